package selection

import (
	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
)

// Snapshot is the persistable form of a [Controller]. Hosts are stored by
// ordinal, which stays meaningful across processes for the same Params.
type Snapshot struct {
	Params fattree.Params `json:"params" bson:"params"`
	Hosts  []int          `json:"hosts" bson:"hosts"`
}

// Snapshot captures the current topology parameters and selection.
func (c *Controller) Snapshot() Snapshot {
	s := Snapshot{Params: c.topo.Params(), Hosts: make([]int, 0, len(c.selected))}
	for _, id := range c.selected {
		ord, _ := c.topo.HostOrdinal(id)
		s.Hosts = append(s.Hosts, ord)
	}
	return s
}

// Restore rebuilds a controller from a snapshot and recomputes the
// highlight. Unlike [Controller.Select] it emits no selection events, so
// loading a stored session does not count as user interaction.
func Restore(s Snapshot, opts ...Option) (*Controller, error) {
	if len(s.Hosts) > 2 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "snapshot selects %d hosts, at most 2 allowed", len(s.Hosts))
	}
	if len(s.Hosts) == 2 && s.Hosts[0] == s.Hosts[1] {
		return nil, errs.New(errs.ErrCodeInvalidInput, "snapshot selects host %d twice", s.Hosts[0])
	}
	c, err := New(s.Params, opts...)
	if err != nil {
		return nil, err
	}
	for _, ord := range s.Hosts {
		id, err := c.topo.Host(ord)
		if err != nil {
			return nil, err
		}
		c.selected = append(c.selected, id)
	}
	if len(c.selected) == 2 {
		r, _ := c.topo.Route(c.selected[0], c.selected[1])
		c.route = &r
	}
	return c, nil
}
