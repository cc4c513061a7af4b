package graph

import (
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/selection"
)

// Selection is the selection state to embed in a [Layout].
type Selection struct {
	Hosts []fattree.NodeID
	Route *fattree.Route
}

// FromTopology converts a topology and selection to its serialization
// format. Nodes and edges are emitted in ID order.
func FromTopology(t *fattree.Topology, sel Selection) Layout {
	p := t.Params()
	w, h := fattree.CanvasSize(p)

	l := Layout{
		Params: p,
		Counts: t.Counts(),
		Width:  w,
		Height: h,
		Levels: t.Levels(),
		Nodes:  make([]Node, len(t.Nodes())),
		Edges:  make([]Edge, len(t.Edges())),
		Hosts:  make([]int, len(t.Hosts())),
	}

	selected := make(map[fattree.NodeID]bool, len(sel.Hosts))
	for _, id := range sel.Hosts {
		selected[id] = true
		l.Selected = append(l.Selected, int(id))
	}
	highlighted := make(map[fattree.EdgeID]bool)
	if sel.Route != nil {
		for _, e := range sel.Route.Edges {
			highlighted[e] = true
			l.Highlight = append(l.Highlight, int(e))
		}
		anc := int(sel.Route.Ancestor)
		l.Ancestor = &anc
	}

	for i, n := range t.Nodes() {
		l.Nodes[i] = nodeFromTopology(n, selected[n.ID])
	}
	for i, e := range t.Edges() {
		s := t.Segment(e.ID)
		l.Edges[i] = Edge{
			ID:        int(e.ID),
			Parent:    int(e.Parent),
			Child:     int(e.Child),
			X1:        s.X1,
			Y1:        s.Y1,
			X2:        s.X2,
			Y2:        s.Y2,
			Highlight: highlighted[e.ID],
		}
	}
	for i, id := range t.Hosts() {
		l.Hosts[i] = int(id)
	}
	return l
}

// FromController converts the controller's topology and selection.
func FromController(c *selection.Controller) Layout {
	sel := Selection{Hosts: c.Selected()}
	if r, ok := c.Route(); ok {
		sel.Route = &r
	}
	return FromTopology(c.Topology(), sel)
}

// SelectedOrdinals returns the host ordinals of the selected nodes.
func (l *Layout) SelectedOrdinals() []int {
	if len(l.Selected) == 0 || len(l.Hosts) == 0 {
		return nil
	}
	first := l.Hosts[0]
	out := make([]int, len(l.Selected))
	for i, id := range l.Selected {
		out[i] = id - first
	}
	return out
}

// nodeFromTopology is the single point of conversion for fattree.Node values.
func nodeFromTopology(n fattree.Node, selected bool) Node {
	return Node{
		ID:       int(n.ID),
		Kind:     n.Kind.String(),
		Half:     n.Half.String(),
		Level:    n.Level,
		Index:    n.Index,
		X:        n.X,
		Y:        n.Y,
		Selected: selected,
	}
}
