// Package svg renders fat-tree layouts as standalone SVG documents.
//
// The output mirrors the classic fat-tree drawing: cables as lines, switches
// as small squares ("pods") and hosts as dots, with the root row on the
// horizontal center line. Highlighted cables and selected hosts carry an
// extra CSS class so the path between two hosts stands out.
//
// Rendering is deterministic: the same layout always produces the same bytes,
// which lets the pipeline cache artifacts by layout hash.
package svg

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/graph"
)

// DefaultCSS styles the drawing when no other style sheet is given.
const DefaultCSS = `
    .cable { stroke: #999; stroke-width: 0.5; }
    .cable.highlight { stroke: #d62728; stroke-width: 2; }
    .pod { fill: #1f77b4; }
    .host { fill: #333; }
    .host.selected { fill: #d62728; }
    .summary { font: 11px sans-serif; fill: #333; }`

// Option configures SVG rendering.
type Option func(*renderer)

type renderer struct {
	css     string
	summary bool
	ids     bool
}

// WithCSS replaces the embedded style sheet. An empty string omits it.
func WithCSS(css string) Option { return func(r *renderer) { r.css = css } }

// WithSummary adds the host, switch, cable and transceiver counts in the
// top-left corner.
func WithSummary() Option { return func(r *renderer) { r.summary = true } }

// WithIDs tags every element with its node or edge ID for client-side
// scripting.
func WithIDs() Option { return func(r *renderer) { r.ids = true } }

// RenderSVG renders the layout. The canvas is l.Width by l.Height and the
// drawing is translated so that the root row sits on its center line.
func RenderSVG(l graph.Layout, opts ...Option) []byte {
	r := renderer{css: DefaultCSS}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" class="main" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(l.Width), num(l.Height), num(l.Width), num(l.Height))
	if r.css != "" {
		fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", r.css)
	}
	fmt.Fprintf(&buf, `  <g transform="translate(%s,%s)">`+"\n", num(l.Width/2), num(l.Height/2))

	// Highlighted cables go last so they are drawn on top.
	for _, e := range l.Edges {
		if !e.Highlight {
			r.renderCable(&buf, e)
		}
	}
	for _, e := range l.Edges {
		if e.Highlight {
			r.renderCable(&buf, e)
		}
	}
	for _, n := range l.Nodes {
		if n.IsHost() {
			r.renderHost(&buf, n)
		}
	}
	for _, n := range l.Nodes {
		if !n.IsHost() {
			r.renderPod(&buf, n)
		}
	}
	buf.WriteString("  </g>\n")

	if r.summary {
		renderSummary(&buf, l.Counts)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) renderCable(buf *bytes.Buffer, e graph.Edge) {
	class := "cable"
	if e.Highlight {
		class += " highlight"
	}
	fmt.Fprintf(buf, `    <line class="%s"%s x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n",
		class, r.id("cable", e.ID), num(e.X1), num(e.Y1), num(e.X2), num(e.Y2))
}

func (r *renderer) renderHost(buf *bytes.Buffer, n graph.Node) {
	class := "host"
	if n.Selected {
		class += " selected"
	}
	fmt.Fprintf(buf, `    <circle class="%s"%s cx="%s" cy="%s" r="%s"/>`+"\n",
		class, r.id("node", n.ID), num(n.X), num(n.Y), num(fattree.HostRadius))
}

func (r *renderer) renderPod(buf *bytes.Buffer, n graph.Node) {
	half := fattree.PodSize / 2
	fmt.Fprintf(buf, `    <rect class="pod"%s x="%s" y="%s" width="%s" height="%s"/>`+"\n",
		r.id("node", n.ID), num(n.X-half), num(n.Y-half), num(fattree.PodSize), num(fattree.PodSize))
}

func (r *renderer) id(prefix string, id int) string {
	if !r.ids {
		return ""
	}
	return fmt.Sprintf(` id="%s-%d"`, prefix, id)
}

func renderSummary(buf *bytes.Buffer, c fattree.Counts) {
	lines := []string{
		"hosts: " + fattree.FormatCount(c.Hosts),
		"switches: " + fattree.FormatCount(c.Switches),
		"cables: " + fattree.FormatCount(c.Cables),
		"transceivers: " + fattree.FormatCount(c.Transceivers),
		"switch transceivers: " + fattree.FormatCount(c.SwitchTransceivers),
	}
	buf.WriteString(`  <g class="summary">` + "\n")
	for i, line := range lines {
		fmt.Fprintf(buf, `    <text x="8" y="%d">%s</text>`+"\n", 16+14*i, line)
	}
	buf.WriteString("  </g>\n")
}

// num formats a coordinate with the shortest exact representation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
