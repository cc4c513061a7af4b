package fattree

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	errs "github.com/matzehuels/fattree/pkg/errors"
)

// MaxLine is the largest number of switches per level that is still laid out.
// Beyond it, a single interaction would spend too long on coordinates and
// cables to stay interactive.
const MaxLine = 1500

// MaxDepth is the largest number of switch levels that is still laid out.
// For k >= 2 MaxLine is reached long before it; it bounds the row count of
// k = 1 trees, whose Line stays at 1 for any depth.
const MaxDepth = 100

// Default parameters, matching the initial form values of the visualizer.
const (
	DefaultDepth = 3
	DefaultWidth = 8
)

// Params selects a fat-tree configuration.
type Params struct {
	// Depth is the number of switch levels, including the leaf level.
	Depth int `json:"depth" bson:"depth" toml:"depth" yaml:"depth"`
	// Width is the switch port count; half of it faces up, half down.
	Width int `json:"width" bson:"width" toml:"width" yaml:"width"`
}

// DefaultParams returns the configuration shown when nothing else is chosen.
func DefaultParams() Params {
	return Params{Depth: DefaultDepth, Width: DefaultWidth}
}

// K returns the number of ports per direction, floor(Width/2).
func (p Params) K() int {
	if p.Width < 0 {
		return (p.Width - 1) / 2
	}
	return p.Width / 2
}

// Line returns the number of switches per level, k^(Depth-1).
// The power saturates at MaxLine+1 so that oversized inputs cannot overflow;
// callers only compare the result against MaxLine.
func (p Params) Line() int {
	if p.Depth <= 0 || p.K() <= 0 {
		return 0
	}
	return boundedPow(p.K(), p.Depth-1, MaxLine+1)
}

// Validate reports whether the configuration can be laid out.
// Rejections carry errs.ErrCodeInvalidTopology.
func (p Params) Validate() error {
	if p.Depth <= 0 {
		return errs.New(errs.ErrCodeInvalidTopology, "depth must be at least 1, got %d", p.Depth)
	}
	if p.K() <= 0 {
		return errs.New(errs.ErrCodeInvalidTopology, "width must be at least 2, got %d", p.Width)
	}
	if p.K() > MaxLine {
		return errs.New(errs.ErrCodeInvalidTopology,
			"topology too large to render interactively: k = %d exceeds %d", p.K(), MaxLine)
	}
	if p.Depth > MaxDepth {
		return errs.New(errs.ErrCodeInvalidTopology,
			"topology too large to render interactively: depth %d exceeds %d", p.Depth, MaxDepth)
	}
	if p.Line() > MaxLine {
		return errs.New(errs.ErrCodeInvalidTopology,
			"topology too large to render interactively: k^(depth-1) = %d^%d exceeds %d",
			p.K(), p.Depth-1, MaxLine)
	}
	return nil
}

// String returns a compact form such as "depth=3 width=8".
func (p Params) String() string {
	return fmt.Sprintf("depth=%d width=%d", p.Depth, p.Width)
}

// Counts are the aggregate sizes of a fat tree, as shown in the summary panel.
type Counts struct {
	Hosts              int `json:"hosts" bson:"hosts"`
	Switches           int `json:"switches" bson:"switches"`
	Cables             int `json:"cables" bson:"cables"`
	Transceivers       int `json:"transceivers" bson:"transceivers"`
	SwitchTransceivers int `json:"switch_transceivers" bson:"switch_transceivers"`
}

// Summarize computes the aggregate counts for p.
// It returns the validation error for configurations that cannot be laid out.
func Summarize(p Params) (Counts, error) {
	if err := p.Validate(); err != nil {
		return Counts{}, err
	}
	k, line := p.K(), p.Line()

	c := Counts{
		Hosts:    2 * line * k,
		Switches: (2*p.Depth - 1) * line,
		Cables:   2 * p.Depth * k * line,
	}
	c.Transceivers = 2 * c.Cables
	c.SwitchTransceivers = c.Transceivers - c.Hosts
	return c, nil
}

var countPrinter = message.NewPrinter(language.English)

// FormatCount groups thousands for display, e.g. 12288 → "12,288".
func FormatCount(n int) string {
	return countPrinter.Sprintf("%d", n)
}

// pow returns base^exp for small non-negative exponents.
func pow(base, exp int) int {
	r := 1
	for range exp {
		r *= base
	}
	return r
}

// boundedPow returns base^exp, or limit as soon as the product reaches it.
func boundedPow(base, exp, limit int) int {
	if base == 1 {
		return 1
	}
	r := 1
	for range exp {
		r *= base
		if r >= limit {
			return limit
		}
	}
	return r
}
