// Package graph provides the serialization format for fat-tree layouts.
//
// This package defines the canonical wire format for fattree's layout data,
// used for JSON files, API responses, caching, session persistence and as the
// input of every renderer.
//
// # Architecture
//
// The package sits at the serialization boundary between the internal graph
// and external formats:
//
//   - [Layout]: Serialization type (this package)
//   - pkg/fattree.Topology: Internal graph with adjacency lists
//   - pkg/selection.Controller: Selected hosts and highlighted cables
//
// Use [FromTopology] or [FromController] to convert into a Layout.
//
// # Core Types
//
//   - [Layout]: A positioned topology plus the current selection
//   - [Node]: Positioned switch or host
//   - [Edge]: Cable with its endpoints' coordinates
//
// # Layout Serialization
//
// Layouts use a flat JSON format. IDs match the fattree node and edge IDs, so
// a client can post a node ID back to the API:
//
//	{
//	  "params": {"depth": 2, "width": 4},
//	  "nodes": [{"id": 0, "kind": "switch", "half": "center", "x": -6, "y": 0}, ...],
//	  "edges": [{"id": 0, "parent": 0, "child": 2, "x1": -6, "y1": 0, "x2": -6.5, "y2": 70}, ...],
//	  "highlight": [0, 2, 8, 10]
//	}
//
// Common operations:
//
//	l := graph.FromTopology(topo, graph.Selection{})
//	data, _ := graph.MarshalLayout(l)              // Layout → []byte
//	parsed, _ := graph.UnmarshalLayout(data)       // []byte → Layout
//	graph.WriteLayoutFile(l, "fattree.json")       // Layout → File
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
