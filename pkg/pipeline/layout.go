package pipeline

import (
	"github.com/matzehuels/fattree/pkg/graph"
	"github.com/matzehuels/fattree/pkg/selection"
)

// GenerateLayout builds the topology for opts, selects opts.Hosts and
// returns the serializable layout with the highlighted route.
//
// A route whose trace dead-ended is still returned; the warning goes to
// opts.Logger.
func GenerateLayout(opts Options) (graph.Layout, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return graph.Layout{}, err
	}
	c, err := selection.Restore(selection.Snapshot{Params: opts.Params(), Hosts: opts.Hosts},
		selection.WithLogger(opts.Logger))
	if err != nil {
		return graph.Layout{}, err
	}
	if r, ok := c.Route(); ok && !r.Complete {
		opts.Logger.Warn("route is incomplete", "from", r.From, "to", r.To, "hops", r.Hops())
	}
	return graph.FromController(c), nil
}
