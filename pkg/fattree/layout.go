package fattree

import "math"

// Drawing constants, in SVG user units.
const (
	// PodSpacing is the horizontal room reserved per switch when groups are
	// placed side by side. The extra unit over ItemSpacing separates groups.
	PodSpacing = 13.0
	// ItemSpacing is the distance between neighboring switches of one group.
	ItemSpacing = 12.0
	// LevelHeight is the vertical distance between switch levels.
	LevelHeight = 70.0
	// HostLine is the vertical distance between a leaf switch and its hosts.
	HostLine = 50.0
	// HostSpacing is the widest horizontal gap between sibling hosts.
	HostSpacing = 4.0
	// PodSize is the edge length of a drawn switch.
	PodSize = 8.0
	// HostRadius is the radius of a drawn host.
	HostRadius = 2.0
	// CanvasMargin is added to the widest row to size the canvas.
	CanvasMargin = 200.0
)

// LevelPositions returns the x-coordinates of the switches at level, ordered
// by (group, item). Level 0 is the root row.
//
// The row is split into k^level groups of k^(depth-1-level) switches each.
// Groups are PodSpacing*pergroup wide and centered as a whole on 0; the
// switches inside a group are ItemSpacing apart and centered on their group.
// Centering uses (pergroup-1)*ItemSpacing/2 rather than the browser
// visualizer's pergroup*ItemSpacing/2, which shifted every row by half an item.
// The result has k^(depth-1) entries and is symmetric about 0.
//
// It returns nil for a level outside [0, depth) or non-positive depth or k.
func LevelPositions(level, depth, k int) []float64 {
	if depth <= 0 || k <= 0 || level < 0 || level >= depth {
		return nil
	}

	ngroup := pow(k, level)
	pergroup := pow(k, depth-1-level)

	wgroup := float64(pergroup) * PodSpacing
	offset := -wgroup * float64(ngroup-1) / 2
	span := float64(pergroup-1) * ItemSpacing / 2

	ret := make([]float64, 0, ngroup*pergroup)
	for i := range ngroup {
		goffset := wgroup*float64(i) - span
		for j := range pergroup {
			ret = append(ret, offset+goffset+ItemSpacing*float64(j))
		}
	}
	return ret
}

// RowY returns the y-coordinate of a switch level in the given half.
func RowY(level int, half Half) float64 {
	return half.Sign() * float64(level) * LevelHeight
}

// CanvasSize returns the drawing size for p: wide enough for one row plus
// CanvasMargin, and LevelHeight per level in each half.
func CanvasSize(p Params) (width, height float64) {
	width = float64(p.Line())*PodSpacing + CanvasMargin
	height = float64(2*p.Depth) * LevelHeight
	return width, height
}

// hostOffset returns the horizontal offset of host h among the k hosts of a
// leaf switch. Hosts are centered on the leaf; the gap shrinks for large k so
// that the fans of neighboring leaves never overlap.
func hostOffset(h, k int) float64 {
	gap := math.Min(HostSpacing, ItemSpacing/float64(k))
	return (float64(h) - float64(k-1)/2) * gap
}
