// Package dot exports fat-tree layouts as Graphviz DOT and renders them with
// the embedded Graphviz library.
//
// The DOT graph keeps the mirrored structure of the drawing: lower-half
// cables point away from the root row and upper-half cables point toward it,
// so Graphviz ranks the upper half above the root row and the lower half
// below it. Cables are undirected (dir=none). Switch rows share a rank.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/graph"
)

// Output formats supported by [Render].
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// Options configures DOT export.
type Options struct {
	// Labels shows node IDs inside switches and next to hosts.
	Labels bool
}

// ToDOT converts a layout to Graphviz DOT format.
// The resulting DOT string can be rendered with [Render].
func ToDOT(l graph.Layout, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph fattree {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.1;\n")
	buf.WriteString("  edge [dir=none, color=\"#999999\"];\n")
	buf.WriteString("\n")

	rows := map[string][]int{}
	var order []string
	for _, n := range l.Nodes {
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(fmtAttrs(n, opts.Labels), ", "))
		key := n.Half + "/" + strconv.Itoa(n.Level)
		if _, ok := rows[key]; !ok {
			order = append(order, key)
		}
		rows[key] = append(rows[key], n.ID)
	}

	buf.WriteString("\n")
	for _, key := range order {
		buf.WriteString("  { rank=same;")
		for _, id := range rows[key] {
			fmt.Fprintf(&buf, " n%d;", id)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	for _, e := range l.Edges {
		from, to := e.Parent, e.Child
		if l.Nodes[e.Child].Half == graph.HalfUpper {
			from, to = to, from
		}
		if e.Highlight {
			fmt.Fprintf(&buf, "  n%d -> n%d [color=\"#d62728\", penwidth=2];\n", from, to)
		} else {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", from, to)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n graph.Node, labels bool) []string {
	label := ""
	if labels {
		label = strconv.Itoa(n.ID)
	}
	if !n.IsHost() {
		return []string{"shape=box", "style=filled", "fillcolor=\"#1f77b4\"", "fontcolor=white", fmt.Sprintf("label=%q", label)}
	}
	fill := "\"#333333\""
	if n.Selected {
		fill = "\"#d62728\""
	}
	attrs := []string{"shape=circle", "style=filled", "fillcolor=" + fill, "width=0.15", "fixedsize=true", "label=\"\""}
	if labels {
		attrs = append(attrs, fmt.Sprintf("xlabel=%q", label))
	}
	return attrs
}

// Render renders a DOT graph using Graphviz. format is [FormatSVG] or
// [FormatPNG]; anything else fails with errs.ErrCodeInvalidFormat.
func Render(ctx context.Context, dot string, format string) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, errs.New(errs.ErrCodeInvalidFormat, "graphviz cannot render %q", format)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if format == FormatSVG {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one that
// scales to its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
