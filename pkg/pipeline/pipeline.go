// Package pipeline provides the layout → render pipeline for fattree.
//
// The CLI and the HTTP API both go through a [Runner], so cache keys, output
// formats and logging are the same for every entry point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: build the topology for Depth/Width, apply the host selection
//     and compute the highlighted route
//  2. Render: produce output in the requested formats (SVG, DOT, PNG, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Depth:   3,
//	    Width:   8,
//	    Hosts:   []int{0, 127},
//	    Formats: []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/fattree/pkg/cache"
	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/graph"
)

// Format constants for output formats.
const (
	// FormatSVG is the built-in deterministic SVG drawing.
	FormatSVG = "svg"
	// FormatJSON is the serialized layout.
	FormatJSON = "json"
	// FormatDOT is the Graphviz source of the layout.
	FormatDOT = "dot"
	// FormatPNG is the layout rendered by Graphviz.
	FormatPNG = "png"
	// FormatGraphvizSVG is the layout rendered by Graphviz as SVG.
	FormatGraphvizSVG = "graphviz-svg"
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatSVG, FormatJSON, FormatDOT, FormatPNG, FormatGraphvizSVG}

// ContentTypes maps output formats to their MIME types.
var ContentTypes = map[string]string{
	FormatSVG:         "image/svg+xml",
	FormatJSON:        "application/json",
	FormatDOT:         "text/vnd.graphviz",
	FormatPNG:         "image/png",
	FormatGraphvizSVG: "image/svg+xml",
}

// Extensions maps output formats to file extensions.
var Extensions = map[string]string{
	FormatSVG:         ".svg",
	FormatJSON:        ".json",
	FormatDOT:         ".dot",
	FormatPNG:         ".png",
	FormatGraphvizSVG: ".gv.svg",
}

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Depth int   `json:"depth"`
	Width int   `json:"width"`
	Hosts []int `json:"hosts,omitempty"` // selected host ordinals, in selection order

	// Render options
	Formats []string `json:"formats,omitempty"`
	Summary bool     `json:"summary,omitempty"` // counts panel in the SVG
	Labels  bool     `json:"labels,omitempty"`  // node IDs in Graphviz output
	IDs     bool     `json:"ids,omitempty"`     // element IDs in the SVG

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives warnings about dead-ended routes. Defaults to a
	// discarding logger.
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the serialized topology with its selection.
	Layout graph.Layout

	// LayoutHash is the content hash of the serialized layout.
	LayoutHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, json, dot, png, graphviz-svg)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// Params returns the topology parameters.
func (o *Options) Params() fattree.Params {
	return fattree.Params{Depth: o.Depth, Width: o.Width}
}

// SetLayoutDefaults fills in the default topology when none is given.
func (o *Options) SetLayoutDefaults() {
	if o.Depth == 0 && o.Width == 0 {
		o.Depth, o.Width = fattree.DefaultDepth, fattree.DefaultWidth
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout applies defaults and checks the topology and selection.
// Host ordinals are checked against the topology when the layout is built.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := o.Params().Validate(); err != nil {
		return err
	}
	if len(o.Hosts) > 2 {
		return errs.New(errs.ErrCodeInvalidInput, "at most 2 hosts can be selected, got %d", len(o.Hosts))
	}
	return nil
}

// SetRenderDefaults selects SVG when no format is given.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies defaults and checks the formats.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline.
func (o *Options) ValidateAndSetDefaults() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Depth: o.Depth, Width: o.Width, Hosts: o.Hosts}
}

// ArtifactKeyOpts returns cache key options for artifact rendering. Flags
// that do not affect a format are left out so they do not split its cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG:
		k.Summary = o.Summary
		k.IDs = o.IDs
	case FormatDOT, FormatPNG, FormatGraphvizSVG:
		k.Labels = o.Labels
	}
	return k
}
