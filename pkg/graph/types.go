package graph

import "github.com/matzehuels/fattree/pkg/fattree"

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Node kinds.
const (
	KindSwitch = "switch"
	KindHost   = "host"
)

// Drawing halves.
const (
	HalfCenter = "center"
	HalfLower  = "lower"
	HalfUpper  = "upper"
)

// =============================================================================
// Layout - Positioned Topology
// =============================================================================

// Layout is the serialization format for a laid-out fat tree.
//
// Width and Height are the canvas size; coordinates are centered on the root
// row, so renderers translate by (Width/2, Height/2). Levels repeats the
// x-coordinates per switch level for clients that draw rows themselves.
//
// Selected, Highlight and Ancestor describe the selection at the time the
// layout was taken. Nodes and Edges carry the same information as flags.
type Layout struct {
	Params fattree.Params `json:"params" bson:"params"`
	Counts fattree.Counts `json:"counts" bson:"counts"`

	Width  float64     `json:"width" bson:"width"`
	Height float64     `json:"height" bson:"height"`
	Levels [][]float64 `json:"levels" bson:"levels"`

	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
	Hosts []int  `json:"hosts" bson:"hosts"`

	Selected  []int `json:"selected,omitempty" bson:"selected,omitempty"`
	Highlight []int `json:"highlight,omitempty" bson:"highlight,omitempty"`
	Ancestor  *int  `json:"ancestor,omitempty" bson:"ancestor,omitempty"`
}

// =============================================================================
// Node - Switch or Host
// =============================================================================

// Node is a positioned switch or host.
type Node struct {
	ID       int     `json:"id" bson:"id"`
	Kind     string  `json:"kind" bson:"kind"`
	Half     string  `json:"half" bson:"half"`
	Level    int     `json:"level" bson:"level"`
	Index    int     `json:"index" bson:"index"`
	X        float64 `json:"x" bson:"x"`
	Y        float64 `json:"y" bson:"y"`
	Selected bool    `json:"selected,omitempty" bson:"selected,omitempty"`
}

// IsHost returns true if this is an endpoint host.
func (n *Node) IsHost() bool { return n.Kind == KindHost }

// =============================================================================
// Edge - Cable
// =============================================================================

// Edge is a cable. Parent is the endpoint closer to the root row and
// (X1, Y1) its position.
type Edge struct {
	ID        int     `json:"id" bson:"id"`
	Parent    int     `json:"parent" bson:"parent"`
	Child     int     `json:"child" bson:"child"`
	X1        float64 `json:"x1" bson:"x1"`
	Y1        float64 `json:"y1" bson:"y1"`
	X2        float64 `json:"x2" bson:"x2"`
	Y2        float64 `json:"y2" bson:"y2"`
	Highlight bool    `json:"highlight,omitempty" bson:"highlight,omitempty"`
}
