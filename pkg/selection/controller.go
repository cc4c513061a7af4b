package selection

import (
	"context"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/observability"
)

// State is the position of a [Controller] in the selection state machine.
type State int

const (
	// Empty means no host is selected and nothing is highlighted.
	Empty State = iota
	// OneSelected means one host is selected and waits for a second.
	OneSelected
	// TwoSelected means two hosts are selected and their route is highlighted.
	TwoSelected
)

// String returns the state name used in logs and API responses.
func (s State) String() string {
	switch s {
	case OneSelected:
		return "one-selected"
	case TwoSelected:
		return "two-selected"
	default:
		return "empty"
	}
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// UnmarshalText decodes a state name as produced by MarshalText.
func (s *State) UnmarshalText(b []byte) error {
	for _, st := range []State{Empty, OneSelected, TwoSelected} {
		if string(b) == st.String() {
			*s = st
			return nil
		}
	}
	return errs.New(errs.ErrCodeInvalidInput, "unknown selection state %q", b)
}

// Reset reasons reported to [observability.SelectionHooks].
const (
	reasonExplicit    = "explicit"
	reasonReconfigure = "reconfigure"
	reasonThird       = "third-selection"
)

// Controller holds a topology, the selected hosts and the highlighted cables.
type Controller struct {
	topo     *fattree.Topology
	selected []fattree.NodeID
	route    *fattree.Route
	logger   *log.Logger
}

// Option configures a [Controller].
type Option func(*Controller)

// WithLogger sets the logger used for state transitions and path warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// New builds the topology for p and returns a controller with an empty
// selection. It returns the validation error when p is rejected.
func New(p fattree.Params, opts ...Option) (*Controller, error) {
	topo, err := fattree.Build(p)
	if err != nil {
		return nil, err
	}
	c := &Controller{
		topo:   topo,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Topology returns the current topology.
func (c *Controller) Topology() *fattree.Topology { return c.topo }

// Params returns the configuration of the current topology.
func (c *Controller) Params() fattree.Params { return c.topo.Params() }

// Configure replaces the topology with one built from p and resets the
// selection. If p is rejected, the error is returned and nothing changes.
func (c *Controller) Configure(ctx context.Context, p fattree.Params) error {
	topo, err := fattree.Build(p)
	if err != nil {
		c.logger.Warn("rejected topology", "params", p, "err", errs.UserMessage(err))
		return err
	}
	c.topo = topo
	c.clear(ctx, reasonReconfigure)
	c.logger.Debug("configured topology", "params", p, "nodes", len(topo.Nodes()))
	return nil
}

// Select applies a click on node id and returns the resulting state.
//
// From Empty the host becomes the single selection. From OneSelected a
// second, different host completes the pair and computes the highlight;
// the same host again deselects it. From TwoSelected the previous pair and
// highlight are cleared and the host starts a new selection.
//
// Nodes that are not hosts are rejected with errs.ErrCodeInvalidHost and
// leave the state unchanged. A route whose trace dead-ends is still
// highlighted from the partial paths; the condition is logged, not returned.
func (c *Controller) Select(ctx context.Context, id fattree.NodeID) (State, error) {
	if !c.topo.IsHost(id) {
		return c.State(), errs.New(errs.ErrCodeInvalidHost, "node %d is not a host", id)
	}

	switch c.State() {
	case Empty:
		c.selected = []fattree.NodeID{id}
	case OneSelected:
		if c.selected[0] == id {
			c.clear(ctx, reasonExplicit)
			c.logger.Debug("deselected host", "node", id)
			observability.Selection().OnSelect(ctx, Empty.String())
			return Empty, nil
		}
		c.selected = append(c.selected, id)
		c.highlight(ctx)
	case TwoSelected:
		c.clear(ctx, reasonThird)
		c.selected = []fattree.NodeID{id}
	}

	state := c.State()
	c.logger.Debug("selected host", "node", id, "state", state)
	observability.Selection().OnSelect(ctx, state.String())
	return state, nil
}

// SelectHost selects the host with the given ordinal.
func (c *Controller) SelectHost(ctx context.Context, ordinal int) (State, error) {
	id, err := c.topo.Host(ordinal)
	if err != nil {
		return c.State(), err
	}
	return c.Select(ctx, id)
}

// SelectAt selects the host drawn at (x, y). Clicks that hit no host are
// rejected with errs.ErrCodeInvalidHost.
func (c *Controller) SelectAt(ctx context.Context, x, y float64) (State, error) {
	id, ok := c.topo.HostAt(x, y)
	if !ok {
		return c.State(), errs.New(errs.ErrCodeInvalidHost, "no host at (%g, %g)", x, y)
	}
	return c.Select(ctx, id)
}

// Reset clears the selection and the highlight.
func (c *Controller) Reset(ctx context.Context) {
	c.clear(ctx, reasonExplicit)
}

func (c *Controller) clear(ctx context.Context, reason string) {
	if len(c.selected) == 0 && c.route == nil {
		return
	}
	c.selected = nil
	c.route = nil
	observability.Selection().OnReset(ctx, reason)
}

func (c *Controller) highlight(ctx context.Context) {
	a, b := c.selected[0], c.selected[1]
	r, err := c.topo.Route(a, b)
	if err != nil {
		c.logger.Warn("incomplete path", "from", a, "to", b, "err", errs.UserMessage(err))
	}
	if !r.Shared {
		c.logger.Warn("paths share no node, using top of first path", "from", a, "to", b, "ancestor", r.Ancestor)
	}
	c.route = &r
	c.logger.Info("highlighted path", "from", a, "to", b, "ancestor", r.Ancestor, "hops", r.Hops())
	observability.Selection().OnRoute(ctx, r.Hops(), r.Complete)
}

// State returns the current state.
func (c *Controller) State() State {
	switch len(c.selected) {
	case 0:
		return Empty
	case 1:
		return OneSelected
	default:
		return TwoSelected
	}
}

// Selected returns the selected hosts in selection order.
func (c *Controller) Selected() []fattree.NodeID {
	return slices.Clone(c.selected)
}

// Highlight returns the highlighted cables sorted by ID. It is empty unless
// the state is TwoSelected.
func (c *Controller) Highlight() []fattree.EdgeID {
	if c.route == nil {
		return nil
	}
	return slices.Clone(c.route.Edges)
}

// Route returns the highlighted route, if any.
func (c *Controller) Route() (fattree.Route, bool) {
	if c.route == nil {
		return fattree.Route{}, false
	}
	return *c.route, true
}
