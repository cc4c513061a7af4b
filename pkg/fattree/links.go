package fattree

// Link connects switch Parent at one level to switch Child at the next level
// away from the root. Both are indices into the levels' [LevelPositions].
type Link struct {
	Parent int
	Child  int
}

// Segment is a drawable straight cable from (X1, Y1) to (X2, Y2).
type Segment struct {
	X1, Y1, X2, Y2 float64
}

// LinkLevel enumerates the cables between level and level+1.
//
// Level is partitioned into k^level groups of pergroup = k^(depth-1-level)
// switches, and each group into k bundles of perbundle = pergroup/k. For
// group i, bundle j, slice t and upper port u, child offset+perbundle*j+t is
// wired to parent offset+perbundle*u+t. Every child therefore reaches the k
// parents sharing its slice, which gives full bisection bandwidth.
//
// Links are returned in (i, j, t, u) order. The result is nil when level+1
// is not a switch level.
func LinkLevel(level, depth, k int) []Link {
	if depth <= 0 || k <= 0 || level < 0 || level >= depth-1 {
		return nil
	}

	pergroup := pow(k, depth-1-level)
	ngroup := pow(k, level)
	perbundle := pergroup / k

	links := make([]Link, 0, ngroup*pergroup*k)
	for i := range ngroup {
		offset := pergroup * i
		for j := range k {
			boffset := perbundle * j
			for t := range perbundle {
				child := offset + boffset + t
				for u := range k {
					links = append(links, Link{Parent: offset + perbundle*u + t, Child: child})
				}
			}
		}
	}
	return links
}

// LinkSegments projects [LinkLevel] onto coordinates: parents lie on the row
// at yParent, children on the row at yChild. Callers draw each half of the
// tree by passing mirrored y values.
func LinkSegments(level int, parents, children []float64, yParent, yChild float64, depth, k int) []Segment {
	links := LinkLevel(level, depth, k)
	segs := make([]Segment, 0, len(links))
	for _, l := range links {
		segs = append(segs, Segment{
			X1: parents[l.Parent], Y1: yParent,
			X2: children[l.Child], Y2: yChild,
		})
	}
	return segs
}

// AttachHosts returns one cable per host: k hosts for each leaf position,
// fanned out around the leaf and placed HostLine beyond the leaf row at y.
// dir is +1 for the lower half and -1 for the upper half. The host end of
// each segment is (X2, Y2).
func AttachHosts(leaves []float64, y, dir float64, k int) []Segment {
	if k <= 0 {
		return nil
	}
	segs := make([]Segment, 0, len(leaves)*k)
	for _, x := range leaves {
		for h := range k {
			segs = append(segs, Segment{
				X1: x, Y1: y,
				X2: x + hostOffset(h, k), Y2: y + dir*HostLine,
			})
		}
	}
	return segs
}
