package fattree

import (
	"slices"

	errs "github.com/matzehuels/fattree/pkg/errors"
)

// Tolerance is the per-axis distance within which a coordinate refers to a
// drawn node. Layout arithmetic is floating point, so exact comparison is
// never used.
const Tolerance = 0.5

// TraceUpward walks from start toward the root row and returns the visited
// nodes, start first. At each step it follows the first incident cable, in
// generation order, that leads one level closer to the root. The walk ends at
// a level-0 switch, so a host needs at most Depth hops.
//
// If a node has no upward cable the partial path is returned together with an
// errs.ErrCodeDeadEnd error. That cannot happen for a topology produced by
// [Build]; callers treat it as a warning and use the partial path.
func (t *Topology) TraceUpward(start NodeID) ([]NodeID, error) {
	cur, ok := t.Node(start)
	if !ok {
		return nil, errs.New(errs.ErrCodeNotFound, "node %d does not exist", start)
	}

	path := []NodeID{start}
	for cur.Level > 0 {
		next, ok := t.parent(cur)
		if !ok {
			return path, errs.New(errs.ErrCodeDeadEnd,
				"no upward cable from %s %d at level %d", cur.Kind, cur.ID, cur.Level)
		}
		path = append(path, next)
		cur = t.nodes[next]
	}
	return path, nil
}

// parent returns the first neighbor of n that is closer to the root.
func (t *Topology) parent(n Node) (NodeID, bool) {
	for _, e := range t.adj[n.ID] {
		if o := t.Other(e, n.ID); t.nodes[o].Level < n.Level {
			return o, true
		}
	}
	return NoNode, false
}

// CommonPoint returns the lowest node shared by two upward paths: the first
// element of p1 (in leaf-to-root order) that also occurs in p2.
//
// When the paths share nothing, it falls back to the last (topmost) element
// of p1 and reports false. An empty p1 yields (NoNode, false).
func CommonPoint(p1, p2 []NodeID) (NodeID, bool) {
	if len(p1) == 0 {
		return NoNode, false
	}
	in2 := make(map[NodeID]struct{}, len(p2))
	for _, id := range p2 {
		in2[id] = struct{}{}
	}
	for _, id := range p1 {
		if _, ok := in2[id]; ok {
			return id, true
		}
	}
	return p1[len(p1)-1], false
}

// Route is the host-to-host path between two nodes.
type Route struct {
	From NodeID `json:"from"`
	To   NodeID `json:"to"`

	// Ancestor is the lowest node shared by both upward paths.
	Ancestor NodeID `json:"ancestor"`

	// Up runs from From to Ancestor, both included.
	Up []NodeID `json:"up"`

	// Down runs from Ancestor to To, both included. When the paths share no
	// node it starts at the top of To's upward path instead.
	Down []NodeID `json:"down"`

	// Edges are the cables along Up and Down, sorted by ID. They include the
	// two host-to-leaf cables when From and To are hosts.
	Edges []EdgeID `json:"edges"`

	// Complete is false when either upward trace dead-ended.
	Complete bool `json:"complete"`

	// Shared is false when the upward paths had no common node and Ancestor
	// is the fallback (the top of From's path).
	Shared bool `json:"shared"`
}

// Hops returns the number of cables on the route.
func (r Route) Hops() int { return len(r.Edges) }

// Route traces a and b upward, resolves their lowest common ancestor and
// collects the cables from a up to the ancestor and from the ancestor down
// to b.
//
// A dead-ended trace does not abort: the route is built from the partial
// paths, Complete is false, and the first errs.ErrCodeDeadEnd error is
// returned alongside the usable route. Unknown nodes yield an
// errs.ErrCodeNotFound error and a zero Route.
func (t *Topology) Route(a, b NodeID) (Route, error) {
	p1, err1 := t.TraceUpward(a)
	if p1 == nil {
		return Route{}, err1
	}
	p2, err2 := t.TraceUpward(b)
	if p2 == nil {
		return Route{}, err2
	}

	anc, shared := CommonPoint(p1, p2)
	i1 := slices.Index(p1, anc)
	i2 := len(p2) - 1
	if shared {
		i2 = slices.Index(p2, anc)
	}

	up := slices.Clone(p1[:i1+1])
	down := slices.Clone(p2[:i2+1])
	slices.Reverse(down)

	r := Route{
		From:     a,
		To:       b,
		Ancestor: anc,
		Up:       up,
		Down:     down,
		Complete: err1 == nil && err2 == nil,
		Shared:   shared,
	}

	seen := make(map[EdgeID]struct{}, i1+i2)
	for _, p := range [][]NodeID{p1[:i1+1], p2[:i2+1]} {
		for i := 1; i < len(p); i++ {
			if e, ok := t.EdgeBetween(p[i-1], p[i]); ok {
				seen[e] = struct{}{}
			}
		}
	}
	r.Edges = make([]EdgeID, 0, len(seen))
	for e := range seen {
		r.Edges = append(r.Edges, e)
	}
	slices.Sort(r.Edges)

	if err1 != nil {
		return r, err1
	}
	return r, err2
}
