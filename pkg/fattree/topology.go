package fattree

import (
	"math"

	errs "github.com/matzehuels/fattree/pkg/errors"
)

// NodeID identifies a switch or host within one [Topology].
// IDs are dense, start at 0 and are stable for a given [Params].
type NodeID int

// NoNode is returned where no node applies.
const NoNode NodeID = -1

// EdgeID identifies a cable within one [Topology].
type EdgeID int

// Kind distinguishes switches from hosts.
type Kind uint8

const (
	// KindSwitch is a switch at some level of the tree.
	KindSwitch Kind = iota
	// KindHost is an endpoint attached to a leaf switch.
	KindHost
)

// String returns "switch" or "host".
func (k Kind) String() string {
	if k == KindHost {
		return "host"
	}
	return "switch"
}

// Half tells which side of the mirrored drawing a node belongs to.
type Half int8

const (
	// Center is the root row, shared by both halves.
	Center Half = 0
	// Lower is the half drawn below the root row (+y).
	Lower Half = 1
	// Upper is the half drawn above the root row (-y).
	Upper Half = -1
)

// halves lists the mirrored halves in drawing order.
var halves = [2]Half{Lower, Upper}

// Sign returns the y direction of the half: +1, -1, or 0 for Center.
func (h Half) Sign() float64 { return float64(h) }

// String returns "center", "lower" or "upper".
func (h Half) String() string {
	switch h {
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	default:
		return "center"
	}
}

// Node is a switch or host. Level counts from the root row (0); hosts sit at
// level Depth. Index is the position within the node's row (for hosts, within
// the host row of its half). X and Y are the drawing coordinates.
type Node struct {
	ID    NodeID
	Kind  Kind
	Half  Half
	Level int
	Index int
	X, Y  float64
}

// IsHost reports whether the node is an endpoint host.
func (n Node) IsHost() bool { return n.Kind == KindHost }

// Edge is a cable. Parent is the endpoint closer to the root row.
type Edge struct {
	ID     EdgeID
	Parent NodeID
	Child  NodeID
}

// rowKey addresses one switch row. The root row uses Center.
type rowKey struct {
	half  Half
	level int
}

// Topology is the explicit graph of one fat-tree configuration.
//
// Node IDs are assigned row by row: the root row first, then levels
// 1..Depth-1 of the lower half, the same levels of the upper half, and
// finally the hosts of the lower and upper halves. Edges are numbered in
// generation order: for each adjacent level pair the lower half's cables
// followed by the upper half's, then the host cables.
//
// A Topology is immutable after [Build].
type Topology struct {
	params Params
	k      int
	levels [][]float64
	nodes  []Node
	edges  []Edge
	adj    [][]EdgeID
	rows   map[rowKey][]NodeID
	hosts  []NodeID
}

// Build lays out p and wires every cable. It returns the validation error
// for configurations that cannot be laid out, in which case nothing is built.
func Build(p Params) (*Topology, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	k, depth := p.K(), p.Depth

	c, _ := Summarize(p)
	t := &Topology{
		params: p,
		k:      k,
		levels: make([][]float64, depth),
		nodes:  make([]Node, 0, c.Switches+c.Hosts),
		edges:  make([]Edge, 0, c.Cables),
		rows:   make(map[rowKey][]NodeID, 2*depth-1),
		hosts:  make([]NodeID, 0, c.Hosts),
	}
	for d := range depth {
		t.levels[d] = LevelPositions(d, depth, k)
	}

	t.addRow(Center, 0)
	for _, half := range halves {
		for d := 1; d < depth; d++ {
			t.addRow(half, d)
		}
	}

	for d := 0; d < depth-1; d++ {
		links := LinkLevel(d, depth, k)
		for _, half := range halves {
			parents, children := t.row(half, d), t.row(half, d+1)
			for _, l := range links {
				t.addEdge(parents[l.Parent], children[l.Child])
			}
		}
	}

	for _, half := range halves {
		for i, leafID := range t.row(half, depth-1) {
			leaf := t.nodes[leafID]
			for h := range k {
				host := t.addNode(Node{
					Kind:  KindHost,
					Half:  half,
					Level: depth,
					Index: i*k + h,
					X:     leaf.X + hostOffset(h, k),
					Y:     leaf.Y + half.Sign()*HostLine,
				})
				t.hosts = append(t.hosts, host)
				t.addEdge(leafID, host)
			}
		}
	}
	return t, nil
}

func (t *Topology) addNode(n Node) NodeID {
	n.ID = NodeID(len(t.nodes))
	t.nodes = append(t.nodes, n)
	t.adj = append(t.adj, nil)
	return n.ID
}

func (t *Topology) addRow(half Half, level int) {
	xs := t.levels[level]
	ids := make([]NodeID, len(xs))
	y := RowY(level, half)
	for i, x := range xs {
		ids[i] = t.addNode(Node{Kind: KindSwitch, Half: half, Level: level, Index: i, X: x, Y: y})
	}
	t.rows[rowKey{half, level}] = ids
}

func (t *Topology) addEdge(parent, child NodeID) {
	id := EdgeID(len(t.edges))
	t.edges = append(t.edges, Edge{ID: id, Parent: parent, Child: child})
	t.adj[parent] = append(t.adj[parent], id)
	t.adj[child] = append(t.adj[child], id)
}

// row returns the switch IDs of a level; level 0 is shared by both halves.
func (t *Topology) row(half Half, level int) []NodeID {
	if level == 0 {
		half = Center
	}
	return t.rows[rowKey{half, level}]
}

// Params returns the configuration the topology was built from.
func (t *Topology) Params() Params { return t.params }

// K returns the number of ports per direction.
func (t *Topology) K() int { return t.k }

// Counts returns the aggregate counts of the topology.
func (t *Topology) Counts() Counts {
	c, _ := Summarize(t.params)
	return c
}

// Levels returns the x-coordinates of every switch level, root row first.
// The returned slices must not be modified.
func (t *Topology) Levels() [][]float64 { return t.levels }

// Nodes returns all nodes indexed by ID. The slice must not be modified.
func (t *Topology) Nodes() []Node { return t.nodes }

// Edges returns all cables indexed by ID. The slice must not be modified.
func (t *Topology) Edges() []Edge { return t.edges }

// Hosts returns the host IDs in host-ordinal order. The slice must not be modified.
func (t *Topology) Hosts() []NodeID { return t.hosts }

// Node returns the node with the given ID.
func (t *Topology) Node(id NodeID) (Node, bool) {
	if id < 0 || int(id) >= len(t.nodes) {
		return Node{}, false
	}
	return t.nodes[id], true
}

// Edge returns the cable with the given ID.
func (t *Topology) Edge(id EdgeID) (Edge, bool) {
	if id < 0 || int(id) >= len(t.edges) {
		return Edge{}, false
	}
	return t.edges[id], true
}

// Switch returns the switch at (half, level, index). Level 0 ignores half.
func (t *Topology) Switch(half Half, level, index int) (NodeID, bool) {
	ids := t.row(half, level)
	if index < 0 || index >= len(ids) {
		return NoNode, false
	}
	return ids[index], true
}

// Host returns the host with the given ordinal.
func (t *Topology) Host(ordinal int) (NodeID, error) {
	if err := errs.ValidateHostOrdinal(ordinal, len(t.hosts)); err != nil {
		return NoNode, err
	}
	return t.hosts[ordinal], nil
}

// HostOrdinal returns the ordinal of a host node.
func (t *Topology) HostOrdinal(id NodeID) (int, bool) {
	n, ok := t.Node(id)
	if !ok || !n.IsHost() {
		return 0, false
	}
	return int(id - t.hosts[0]), true
}

// IsHost reports whether id is a host of this topology.
func (t *Topology) IsHost(id NodeID) bool {
	n, ok := t.Node(id)
	return ok && n.IsHost()
}

// Incident returns the cables attached to id in generation order.
// The slice must not be modified.
func (t *Topology) Incident(id NodeID) []EdgeID {
	if id < 0 || int(id) >= len(t.adj) {
		return nil
	}
	return t.adj[id]
}

// Other returns the endpoint of e that is not n.
func (t *Topology) Other(e EdgeID, n NodeID) NodeID {
	edge := t.edges[e]
	if edge.Parent == n {
		return edge.Child
	}
	return edge.Parent
}

// EdgeBetween returns the cable joining a and b.
func (t *Topology) EdgeBetween(a, b NodeID) (EdgeID, bool) {
	for _, e := range t.Incident(a) {
		if t.Other(e, a) == b {
			return e, true
		}
	}
	return 0, false
}

// Segment returns the drawable form of a cable, parent end first.
func (t *Topology) Segment(e EdgeID) Segment {
	edge := t.edges[e]
	p, c := t.nodes[edge.Parent], t.nodes[edge.Child]
	return Segment{X1: p.X, Y1: p.Y, X2: c.X, Y2: c.Y}
}

// NodeAt returns the node drawn at (x, y), within [Tolerance] on each axis.
// When several nodes qualify, the closest one wins, then the lowest ID.
func (t *Topology) NodeAt(x, y float64) (NodeID, bool) {
	return t.nearest(x, y, func(Node) bool { return true })
}

// HostAt is like [Topology.NodeAt] but only considers hosts.
func (t *Topology) HostAt(x, y float64) (NodeID, bool) {
	return t.nearest(x, y, Node.IsHost)
}

func (t *Topology) nearest(x, y float64, keep func(Node) bool) (NodeID, bool) {
	best, bestDist := NoNode, math.Inf(1)
	for _, n := range t.nodes {
		dx, dy := math.Abs(n.X-x), math.Abs(n.Y-y)
		if dx >= Tolerance || dy >= Tolerance || !keep(n) {
			continue
		}
		if d := dx*dx + dy*dy; d < bestDist {
			best, bestDist = n.ID, d
		}
	}
	return best, best != NoNode
}
