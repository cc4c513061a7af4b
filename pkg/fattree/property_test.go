package fattree

import (
	"math"
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestTopologyProperties checks layout, wiring and routing invariants over
// randomly chosen configurations.
func TestTopologyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	depths := gen.IntRange(1, 4)
	widths := gen.IntRange(2, 10)

	properties.Property("level rows have k^(depth-1) entries and are symmetric", prop.ForAll(
		func(depth, width int) bool {
			p := Params{Depth: depth, Width: width}
			for level := range depth {
				xs := LevelPositions(level, depth, p.K())
				if len(xs) != p.Line() {
					return false
				}
				for i, x := range xs {
					if math.Abs(x+xs[len(xs)-1-i]) > 1e-9 {
						return false
					}
				}
			}
			return true
		},
		depths, widths,
	))

	properties.Property("every non-root switch has k parents and k children", prop.ForAll(
		func(depth, width int) bool {
			topo, err := Build(Params{Depth: depth, Width: width})
			if err != nil {
				return false
			}
			k := topo.K()
			for _, n := range topo.Nodes() {
				if n.IsHost() || n.Level == 0 {
					continue
				}
				up, down := 0, 0
				for _, e := range topo.Incident(n.ID) {
					if other, _ := topo.Node(topo.Other(e, n.ID)); other.Level < n.Level {
						up++
					} else {
						down++
					}
				}
				if up != k || down != k {
					return false
				}
			}
			return true
		},
		depths, widths,
	))

	properties.Property("host traces reach the root row in depth hops", prop.ForAll(
		func(depth, width, pick int) bool {
			topo, err := Build(Params{Depth: depth, Width: width})
			if err != nil {
				return false
			}
			hosts := topo.Hosts()
			path, err := topo.TraceUpward(hosts[pick%len(hosts)])
			if err != nil || len(path) != depth+1 {
				return false
			}
			top, _ := topo.Node(path[len(path)-1])
			return top.Level == 0 && top.Y == 0
		},
		depths, widths, gen.IntRange(0, 1<<16),
	))

	properties.Property("CommonPoint of a path with itself is its start", prop.ForAll(
		func(depth, width, pick int) bool {
			topo, err := Build(Params{Depth: depth, Width: width})
			if err != nil {
				return false
			}
			hosts := topo.Hosts()
			path, _ := topo.TraceUpward(hosts[pick%len(hosts)])
			got, ok := CommonPoint(path, path)
			return ok && got == path[0]
		},
		depths, widths, gen.IntRange(0, 1<<16),
	))

	properties.Property("routes form a connected path between the hosts", prop.ForAll(
		func(depth, width, a, b int) bool {
			topo, err := Build(Params{Depth: depth, Width: width})
			if err != nil {
				return false
			}
			hosts := topo.Hosts()
			from, to := hosts[a%len(hosts)], hosts[b%len(hosts)]
			r, err := topo.Route(from, to)
			if err != nil || !r.Complete || !r.Shared {
				return false
			}
			if r.Up[0] != from || r.Down[len(r.Down)-1] != to {
				return false
			}
			if len(r.Up) != len(r.Down) || r.Hops() != 2*(len(r.Up)-1) {
				return false
			}
			for _, p := range [][]NodeID{r.Up, r.Down} {
				for i := 1; i < len(p); i++ {
					e, ok := topo.EdgeBetween(p[i-1], p[i])
					if !ok || !slices.Contains(r.Edges, e) {
						return false
					}
				}
			}
			return true
		},
		depths, widths, gen.IntRange(0, 1<<16), gen.IntRange(0, 1<<16),
	))

	properties.TestingRun(t)
}
