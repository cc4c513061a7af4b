// Package pkg provides the libraries behind fattree, a layout engine and path
// highlighter for mirrored fat-tree networks.
//
// # Overview
//
// A fat tree is fully described by two numbers: its depth (switch levels) and
// its switch width (ports, half facing up and half facing down). From those,
// fattree computes the position of every switch and host, wires the cables
// between adjacent levels, and traces the route between any two hosts.
//
// The drawing is mirrored around a shared root row: one copy of levels
// 1..depth-1 and the hosts hangs below the root row, the other above it.
//
// # Architecture
//
// The typical data flow:
//
//	Params (depth, width)
//	         ↓
//	    [fattree] package (positions, cables, hosts, routes)
//	         ↓
//	    [selection] package (selected hosts, highlighted cables)
//	         ↓
//	    [graph] package (serialized layout)
//	         ↓
//	    [render] packages (SVG, DOT, PNG)
//
// [pipeline] runs these stages with caching and is shared by the CLI and the
// HTTP API in [server].
//
// # Quick Start
//
//	topo, err := fattree.Build(fattree.Params{Depth: 3, Width: 8})
//	if err != nil {
//	    return err
//	}
//	a, _ := topo.Host(0)
//	b, _ := topo.Host(127)
//	route, err := topo.Route(a, b)
//	fmt.Println(route.Ancestor, route.Edges)
//
// # Main Packages
//
// ## Domain Logic
//
// [fattree] - Parameter validation, summary counts, row positions, cable
// generation, host attachment, upward tracing and lowest common ancestors.
//
// [selection] - The click state machine (empty, one selected, two selected)
// and its snapshots.
//
// ## Serialization and Rendering
//
// [graph] - The JSON layout shared by every renderer and the HTTP API.
//
// [render] - The native SVG drawing and Graphviz DOT/PNG output.
//
// ## Infrastructure
//
// [pipeline] - Layout → render with cache keys and output formats.
//
// [cache] - File, Redis and null caches for layouts and artifacts.
//
// [session] - Memory, file, Redis and MongoDB stores for HTTP selections.
//
// [config] - TOML/YAML configuration with validation.
//
// [server] - The chi HTTP API.
//
// [errors] - Error codes shared by every layer.
//
// [observability] and [metrics] - Hook interfaces and their Prometheus
// implementation.
//
// [fattree]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/fattree
// [selection]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/selection
// [graph]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/session
// [config]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/observability
// [metrics]: https://pkg.go.dev/github.com/matzehuels/fattree/pkg/metrics
package pkg
