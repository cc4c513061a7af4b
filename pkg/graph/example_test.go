package graph_test

import (
	"context"
	"fmt"

	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/graph"
	"github.com/matzehuels/fattree/pkg/selection"
)

func ExampleFromTopology() {
	topo, _ := fattree.Build(fattree.Params{Depth: 2, Width: 4})
	l := graph.FromTopology(topo, graph.Selection{})

	fmt.Println("nodes:", len(l.Nodes))
	fmt.Println("edges:", len(l.Edges))
	fmt.Println("canvas:", l.Width, "x", l.Height)
	// Output:
	// nodes: 14
	// edges: 16
	// canvas: 226 x 280
}

func ExampleFromController() {
	ctx := context.Background()
	c, _ := selection.New(fattree.Params{Depth: 2, Width: 4})
	c.SelectHost(ctx, 0)
	c.SelectHost(ctx, 1)

	l := graph.FromController(c)
	fmt.Println("selected:", l.Selected)
	fmt.Println("highlight:", l.Highlight)
	fmt.Println("ancestor:", *l.Ancestor)
	// Output:
	// selected: [6 7]
	// highlight: [8 9]
	// ancestor: 2
}
