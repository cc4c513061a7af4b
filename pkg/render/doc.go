// Package render groups the output formats for fat-tree layouts.
//
// # Overview
//
// Every renderer consumes a [graph.Layout], the serialized form of a laid-out
// topology plus its current selection:
//
//   - [svg]: the native drawing (pods, hosts, cables, highlighted path)
//   - [dot]: Graphviz DOT export, rendered to PNG or SVG through go-graphviz
//
// The native SVG keeps the exact coordinates of the layout engine. The
// Graphviz output lets Graphviz place the nodes and only preserves rows and
// the highlighted cables.
//
//	svg := svg.RenderSVG(layout, svg.WithSummary())
//	dotSrc := dot.ToDOT(layout, dot.Options{})
//	png, err := dot.Render(ctx, dotSrc, dot.FormatPNG)
//
// [graph.Layout]: github.com/matzehuels/fattree/pkg/graph.Layout
// [svg]: github.com/matzehuels/fattree/pkg/render/svg
// [dot]: github.com/matzehuels/fattree/pkg/render/dot
package render
