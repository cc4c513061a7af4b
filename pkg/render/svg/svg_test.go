package svg

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/graph"
)

func testLayout(t *testing.T, hosts ...int) graph.Layout {
	t.Helper()
	topo, err := fattree.Build(fattree.Params{Depth: 2, Width: 4})
	if err != nil {
		t.Fatal(err)
	}
	var sel graph.Selection
	for _, ord := range hosts {
		id, _ := topo.Host(ord)
		sel.Hosts = append(sel.Hosts, id)
	}
	if len(sel.Hosts) == 2 {
		r, _ := topo.Route(sel.Hosts[0], sel.Hosts[1])
		sel.Route = &r
	}
	return graph.FromTopology(topo, sel)
}

func TestRenderSVGElements(t *testing.T) {
	out := string(RenderSVG(testLayout(t)))

	tests := []struct {
		substr string
		want   int
	}{
		{"<line ", 16},
		{`<circle class="host"`, 8},
		{`<rect class="pod"`, 6},
		{"highlight\"", 0},
	}
	for _, tt := range tests {
		if got := strings.Count(out, tt.substr); got != tt.want {
			t.Errorf("count(%q) = %d, want %d", tt.substr, got, tt.want)
		}
	}

	for _, want := range []string{
		`width="226" height="280"`,
		`<g transform="translate(113,140)">`,
		`<line class="cable" x1="-6" y1="0" x2="-6.5" y2="70"/>`,
		`<circle class="host" cx="-8.5" cy="120" r="2"/>`,
		`<rect class="pod" x="-10" y="-4" width="8" height="8"/>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSVGHighlight(t *testing.T) {
	out := string(RenderSVG(testLayout(t, 0, 2)))

	if got := strings.Count(out, `class="cable highlight"`); got != 4 {
		t.Errorf("highlighted cables = %d, want 4", got)
	}
	if got := strings.Count(out, `class="host selected"`); got != 2 {
		t.Errorf("selected hosts = %d, want 2", got)
	}

	lastPlain := strings.LastIndex(out, `class="cable" `)
	firstHighlight := strings.Index(out, `class="cable highlight"`)
	if firstHighlight < lastPlain {
		t.Error("highlighted cables should be drawn after plain ones")
	}
}

func TestRenderSVGOneSelected(t *testing.T) {
	out := string(RenderSVG(testLayout(t, 3)))

	if got := strings.Count(out, `class="host selected"`); got != 1 {
		t.Errorf("selected hosts = %d, want 1", got)
	}
	if strings.Contains(out, "highlight\"") {
		t.Error("no cable should be highlighted with a single host selected")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	l := testLayout(t)

	t.Run("default css", func(t *testing.T) {
		if !strings.Contains(string(RenderSVG(l)), "<style>") {
			t.Error("default output should embed a style sheet")
		}
	})
	t.Run("no css", func(t *testing.T) {
		if strings.Contains(string(RenderSVG(l, WithCSS(""))), "<style>") {
			t.Error("WithCSS(\"\") should omit the style sheet")
		}
	})
	t.Run("ids", func(t *testing.T) {
		out := string(RenderSVG(l, WithIDs()))
		for _, want := range []string{`id="cable-0"`, `id="node-6"`, `id="node-0"`} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})
	t.Run("summary", func(t *testing.T) {
		out := string(RenderSVG(l, WithSummary()))
		for _, want := range []string{"hosts: 8", "switches: 6", "cables: 16", "transceivers: 32", "switch transceivers: 24"} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})
}

func TestRenderSVGSummaryGroupsThousands(t *testing.T) {
	topo, err := fattree.Build(fattree.Params{Depth: 3, Width: 20})
	if err != nil {
		t.Fatal(err)
	}
	out := string(RenderSVG(graph.FromTopology(topo, graph.Selection{}), WithSummary()))
	for _, want := range []string{"hosts: 2,000", "switches: 500", "cables: 6,000", "transceivers: 12,000", "switch transceivers: 10,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	l := testLayout(t, 1, 5)
	if !bytes.Equal(RenderSVG(l), RenderSVG(l)) {
		t.Error("RenderSVG should produce identical output for identical input")
	}
}
