// Package fattree models k-ary fat-tree network topologies: their aggregate
// counts, a deterministic planar layout, the full-bisection link set between
// adjacent switch levels, and host-to-host path reconstruction.
//
// # Overview
//
// A fat tree is described by two numbers, [Params.Depth] (switch levels,
// including the leaf level) and [Params.Width]. Every switch has k = Width/2
// ports facing up and k facing down. Each level holds k^(Depth-1) switches,
// laid out as nested groups so that the recursive pod structure is visible.
//
// The drawing is mirrored: level 0 (the root row) sits once on y = 0, and
// levels 1..Depth-1 appear twice, in the lower half (+y) and the upper half
// (-y). Hosts hang off the leaf row of each half.
//
// # Graph First, Geometry Second
//
// [Build] produces a [Topology]: an explicit graph with stable integer
// [NodeID] and [EdgeID] values and adjacency lists. Coordinates are derived
// attributes used for rendering and hit-testing ([Topology.NodeAt]); path
// reconstruction ([Topology.TraceUpward], [CommonPoint], [Topology.Route])
// works on node IDs only.
//
// # Building Blocks
//
// The pure functions behind [Build] are exported for renderers and tests:
//
//   - [Summarize]: host, switch, cable and transceiver counts
//   - [LevelPositions]: x-coordinates for one level
//   - [LinkLevel]: parent/child index pairs between two adjacent levels
//   - [LinkSegments], [AttachHosts]: the same links as drawable segments
//
// # Limits
//
// Coordinate and edge counts grow as O(k^Depth). [Params.Validate] rejects
// configurations whose rows would exceed [MaxLine] switches, whose k exceeds
// [MaxLine], or that have more than [MaxDepth] levels, with an errors.ErrCodeInvalidTopology error;
// nothing is laid out in that case.
//
// # Concurrency
//
// All functions are pure. A built [Topology] is immutable and safe for
// concurrent reads.
package fattree
