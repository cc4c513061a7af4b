package fattree_test

import (
	"fmt"

	"github.com/matzehuels/fattree/pkg/fattree"
)

func ExampleSummarize() {
	c, err := fattree.Summarize(fattree.Params{Depth: 3, Width: 8})
	if err != nil {
		panic(err)
	}
	fmt.Println("hosts:", c.Hosts)
	fmt.Println("switches:", c.Switches)
	fmt.Println("cables:", c.Cables)
	fmt.Println("transceivers:", c.Transceivers)
	fmt.Println("switch transceivers:", c.SwitchTransceivers)
	// Output:
	// hosts: 128
	// switches: 80
	// cables: 384
	// transceivers: 768
	// switch transceivers: 640
}

func ExampleSummarize_tooLarge() {
	_, err := fattree.Summarize(fattree.Params{Depth: 6, Width: 16})
	fmt.Println(err)
	// Output:
	// INVALID_TOPOLOGY: topology too large to render interactively: k^(depth-1) = 8^5 exceeds 1500
}

func ExampleLevelPositions() {
	// Level 1 of a depth-3 tree with two ports per direction: two groups of two.
	fmt.Println(fattree.LevelPositions(1, 3, 2))
	// Output:
	// [-19 -7 7 19]
}

func ExampleLinkLevel() {
	for _, l := range fattree.LinkLevel(0, 2, 2) {
		fmt.Printf("%d -> %d\n", l.Parent, l.Child)
	}
	// Output:
	// 0 -> 0
	// 1 -> 0
	// 0 -> 1
	// 1 -> 1
}

func ExampleTopology_Route() {
	topo, err := fattree.Build(fattree.Params{Depth: 2, Width: 4})
	if err != nil {
		panic(err)
	}
	a, _ := topo.Host(0)
	b, _ := topo.Host(2)

	r, err := topo.Route(a, b)
	if err != nil {
		panic(err)
	}
	fmt.Println("up:", r.Up)
	fmt.Println("down:", r.Down)
	fmt.Println("ancestor:", r.Ancestor)
	fmt.Println("cables:", r.Edges)
	// Output:
	// up: [6 2 0]
	// down: [0 3 8]
	// ancestor: 0
	// cables: [0 2 8 10]
}
