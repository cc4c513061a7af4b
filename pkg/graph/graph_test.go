package graph

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/selection"
)

func buildTopology(t *testing.T, p fattree.Params) *fattree.Topology {
	t.Helper()
	topo, err := fattree.Build(p)
	if err != nil {
		t.Fatalf("Build(%v) error: %v", p, err)
	}
	return topo
}

func TestFromTopology(t *testing.T) {
	topo := buildTopology(t, fattree.Params{Depth: 2, Width: 4})
	l := FromTopology(topo, Selection{})

	if len(l.Nodes) != 14 || len(l.Edges) != 16 || len(l.Hosts) != 8 {
		t.Fatalf("nodes/edges/hosts = %d/%d/%d, want 14/16/8", len(l.Nodes), len(l.Edges), len(l.Hosts))
	}
	if l.Width != 2*fattree.PodSpacing+fattree.CanvasMargin {
		t.Errorf("Width = %v, want %v", l.Width, 2*fattree.PodSpacing+fattree.CanvasMargin)
	}
	if l.Height != 4*fattree.LevelHeight {
		t.Errorf("Height = %v, want %v", l.Height, 4*fattree.LevelHeight)
	}

	host := l.Nodes[6]
	if host.Kind != KindHost || host.Half != HalfLower || host.X != -8.5 || host.Y != 120 {
		t.Errorf("Nodes[6] = %+v, want lower host at (-8.5, 120)", host)
	}
	if root := l.Nodes[0]; root.Half != HalfCenter || root.Kind != KindSwitch {
		t.Errorf("Nodes[0] = %+v, want center switch", root)
	}

	e := l.Edges[0]
	if e.Parent != 0 || e.Child != 2 || e.X1 != -6 || e.Y2 != 70 {
		t.Errorf("Edges[0] = %+v", e)
	}
	if l.Ancestor != nil || len(l.Selected) != 0 || len(l.Highlight) != 0 {
		t.Error("empty selection should leave selection fields unset")
	}
}

func TestFromController(t *testing.T) {
	ctx := context.Background()
	c, err := selection.New(fattree.Params{Depth: 2, Width: 4})
	if err != nil {
		t.Fatal(err)
	}
	c.SelectHost(ctx, 0)
	c.SelectHost(ctx, 2)

	l := FromController(c)
	if want := []int{6, 8}; !slices.Equal(l.Selected, want) {
		t.Errorf("Selected = %v, want %v", l.Selected, want)
	}
	if want := []int{0, 2, 8, 10}; !slices.Equal(l.Highlight, want) {
		t.Errorf("Highlight = %v, want %v", l.Highlight, want)
	}
	if l.Ancestor == nil || *l.Ancestor != 0 {
		t.Errorf("Ancestor = %v, want 0", l.Ancestor)
	}
	if !l.Nodes[6].Selected || l.Nodes[7].Selected {
		t.Error("node Selected flags do not match the selection")
	}

	var flagged []int
	for _, e := range l.Edges {
		if e.Highlight {
			flagged = append(flagged, e.ID)
		}
	}
	if !slices.Equal(flagged, l.Highlight) {
		t.Errorf("highlighted edges = %v, want %v", flagged, l.Highlight)
	}
	if want := []int{0, 2}; !slices.Equal(l.SelectedOrdinals(), want) {
		t.Errorf("SelectedOrdinals() = %v, want %v", l.SelectedOrdinals(), want)
	}
}

func TestMarshalUnmarshalLayout(t *testing.T) {
	topo := buildTopology(t, fattree.Params{Depth: 3, Width: 4})
	route, _ := topo.Route(topo.Hosts()[0], topo.Hosts()[5])
	l := FromTopology(topo, Selection{Hosts: []fattree.NodeID{route.From, route.To}, Route: &route})

	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout() error: %v", err)
	}
	if !strings.Contains(string(data), `"highlight": [`) {
		t.Error("marshaled layout should contain the highlight list")
	}

	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout() error: %v", err)
	}
	if got.Params != l.Params || got.Counts != l.Counts {
		t.Errorf("params/counts = %v/%v, want %v/%v", got.Params, got.Counts, l.Params, l.Counts)
	}
	if !slices.Equal(got.Highlight, l.Highlight) || *got.Ancestor != *l.Ancestor {
		t.Errorf("selection lost in round trip")
	}
	if !slices.Equal(got.Nodes, l.Nodes) || !slices.Equal(got.Edges, l.Edges) {
		t.Errorf("nodes or edges changed in round trip")
	}
}

func TestUnmarshalLayoutRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errs.Code
	}{
		{"malformed", `{"params":`, errs.ErrCodeInvalidInput},
		{"invalid topology", `{"params":{"depth":0,"width":4}}`, errs.ErrCodeInvalidTopology},
		{"missing nodes", `{"params":{"depth":1,"width":2},"nodes":[],"edges":[]}`, errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := UnmarshalLayout([]byte(tt.data)); !errs.Is(err, tt.code) {
				t.Errorf("UnmarshalLayout() error = %v, want %v", err, tt.code)
			}
		})
	}
}

func TestLayoutFileRoundTrip(t *testing.T) {
	topo := buildTopology(t, fattree.Params{Depth: 1, Width: 6})
	l := FromTopology(topo, Selection{})
	path := filepath.Join(t.TempDir(), "layout.json")

	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile() error: %v", err)
	}
	got, err := ReadLayoutFile(path)
	if err != nil {
		t.Fatalf("ReadLayoutFile() error: %v", err)
	}
	if len(got.Nodes) != len(l.Nodes) {
		t.Errorf("len(Nodes) = %d, want %d", len(got.Nodes), len(l.Nodes))
	}

	if _, err := ReadLayoutFile(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadLayoutFile(missing) error = %v, want not-exist", err)
	}
}

func TestWriteLayout(t *testing.T) {
	topo := buildTopology(t, fattree.Params{Depth: 1, Width: 2})
	var buf bytes.Buffer
	if err := WriteLayout(FromTopology(topo, Selection{}), &buf); err != nil {
		t.Fatalf("WriteLayout() error: %v", err)
	}
	got, err := ReadLayout(&buf)
	if err != nil {
		t.Fatalf("ReadLayout() error: %v", err)
	}
	if got.Counts.Hosts != 2 {
		t.Errorf("Counts.Hosts = %d, want 2", got.Counts.Hosts)
	}
}
