package pipeline

import (
	"context"
	"fmt"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/graph"
	"github.com/matzehuels/fattree/pkg/render/dot"
	"github.com/matzehuels/fattree/pkg/render/svg"
)

// RenderFromLayout generates output artifacts in the requested formats.
// The Graphviz source is built once and shared by every Graphviz format.
func RenderFromLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	var dotSrc string
	dotSource := func() string {
		if dotSrc == "" {
			dotSrc = dot.ToDOT(l, dot.Options{Labels: opts.Labels})
		}
		return dotSrc
	}

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = svg.RenderSVG(l, buildSVGOptions(opts)...)
		case FormatJSON:
			data, err = graph.MarshalLayout(l)
		case FormatDOT:
			data = []byte(dotSource())
		case FormatPNG:
			data, err = dot.Render(ctx, dotSource(), dot.FormatPNG)
		case FormatGraphvizSVG:
			data, err = dot.Render(ctx, dotSource(), dot.FormatSVG)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// RenderFromLayoutData renders output from serialized layout data.
func RenderFromLayoutData(ctx context.Context, layoutData []byte, opts Options) (map[string][]byte, error) {
	l, err := graph.UnmarshalLayout(layoutData)
	if err != nil {
		return nil, err
	}
	return RenderFromLayout(ctx, l, opts)
}

func buildSVGOptions(opts Options) []svg.Option {
	var svgOpts []svg.Option
	if opts.Summary {
		svgOpts = append(svgOpts, svg.WithSummary())
	}
	if opts.IDs {
		svgOpts = append(svgOpts, svg.WithIDs())
	}
	return svgOpts
}
