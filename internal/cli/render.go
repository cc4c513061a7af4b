package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output  string // output file (single format) or base path
	formats string // comma-separated output formats
	summary bool   // counts panel in the SVG
	labels  bool   // node IDs in Graphviz output
	ids     bool   // element IDs in the SVG
	refresh bool   // bypass cache reads
	layout  string // render a saved layout instead of computing one
}

// renderCommand creates the render command for generating drawings.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		topo  topologyFlags
		hosts hostFlags
		opts  renderOpts
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a fat tree to SVG, PNG, DOT or JSON",
		Long: `Render a fat tree and write one file per format.

The svg format is the built-in drawing; png and graphviz-svg go through
Graphviz. With --from and --to the path between the two hosts is highlighted.

With --layout, a file written by "fattree layout" is rendered as saved,
including its selection; topology and host flags are ignored.`,
		Example: `  fattree render -d 3 -w 8
  fattree render -f svg,png -o tree --from 0 --to 127 --summary
  fattree render --layout tree.json -f png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := pipeline.ParseFormats(opts.formats)
			if err != nil {
				return err
			}
			if len(formats) == 0 {
				formats = []string{pipeline.FormatSVG}
			}
			if opts.layout != "" {
				return c.renderLayoutFile(cmd, opts, formats)
			}

			p := c.params(cmd, topo)
			selected, err := hosts.resolve(p)
			if err != nil {
				return err
			}
			base, err := outputBase(opts.output, p, formats)
			if err != nil {
				return err
			}
			return c.runRender(cmd, pipeline.Options{
				Depth:   p.Depth,
				Width:   p.Width,
				Hosts:   selected,
				Formats: formats,
				Summary: opts.summary,
				Labels:  opts.labels,
				IDs:     opts.ids,
				Refresh: opts.refresh,
			}, base)
		},
	}

	topo.register(cmd)
	hosts.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: fattree-d<depth>-w<width>)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.Formats, ", ")+" (comma-separated, default svg)")
	cmd.Flags().BoolVar(&opts.summary, "summary", false, "draw the counts panel (svg)")
	cmd.Flags().BoolVar(&opts.labels, "labels", false, "label nodes with their IDs (dot, png, graphviz-svg)")
	cmd.Flags().BoolVar(&opts.ids, "ids", false, "tag SVG elements with their node and cable IDs (svg)")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if outputs are cached")
	cmd.Flags().StringVar(&opts.layout, "layout", "", "render a layout JSON file instead of computing one")

	return cmd
}

// runRender executes the pipeline and writes base+extension per format.
func (c *CLI) runRender(cmd *cobra.Command, opts pipeline.Options, base string) error {
	ctx := cmd.Context()
	runner, err := c.newRunner(ctx)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	written, err := writeArtifacts(base, opts.Formats, result.Artifacts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}

	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", opts.Params()))
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit && result.CacheInfo.RenderHit)
	if len(opts.Hosts) == 2 && len(result.Layout.Highlight) > 0 {
		printDetail("Highlighted %d cables between hosts %d and %d",
			len(result.Layout.Highlight), opts.Hosts[0], opts.Hosts[1])
	}
	return nil
}

// renderLayoutFile renders a saved layout without touching the cache.
// Outputs go next to the layout file unless -o is given.
func (c *CLI) renderLayoutFile(cmd *cobra.Command, opts renderOpts, formats []string) error {
	data, err := os.ReadFile(opts.layout)
	if err != nil {
		return errs.Wrap(errs.ErrCodeNotFound, err, "read layout %s", opts.layout)
	}

	output := opts.output
	if output == "" {
		output = strings.TrimSuffix(opts.layout, filepath.Ext(opts.layout))
	}
	base, err := outputBase(output, fattree.Params{}, formats)
	if err != nil {
		return err
	}
	if slices.Contains(formats, pipeline.FormatJSON) && base+pipeline.Extensions[pipeline.FormatJSON] == opts.layout {
		return errs.New(errs.ErrCodeInvalidInput, "refusing to overwrite %s; pass -o", opts.layout)
	}

	prog := newProgress(c.Logger)
	artifacts, err := pipeline.RenderFromLayoutData(cmd.Context(), data, pipeline.Options{
		Formats: formats,
		Summary: opts.summary,
		Labels:  opts.labels,
		IDs:     opts.ids,
		Logger:  c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done("Rendered " + opts.layout)

	written, err := writeArtifacts(base, formats, artifacts)
	if err != nil {
		return err
	}
	printSuccess("Rendered %s", opts.layout)
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// writeArtifacts writes one file per format and returns the paths in format order.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	written := make([]string, 0, len(formats))
	for _, format := range formats {
		path := base + pipeline.Extensions[format]
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return written, errs.Wrap(errs.ErrCodeInternal, err, "write %s", path)
		}
		written = append(written, path)
	}
	return written, nil
}

// outputBase derives the path that format extensions are appended to.
//
// Without -o the base is named after the topology. A single format with an
// -o that already ends in that format's extension is written exactly there;
// otherwise a known extension on -o is stripped.
func outputBase(output string, p fattree.Params, formats []string) (string, error) {
	if output == "" {
		return fmt.Sprintf("%s-d%d-w%d", appName, p.Depth, p.Width), nil
	}
	if err := errs.ValidateOutputBase(filepath.Base(output)); err != nil {
		return "", err
	}
	if len(formats) == 1 {
		if ext := pipeline.Extensions[formats[0]]; strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext), nil
		}
	}
	// Longest extensions first so "x.gv.svg" loses ".gv.svg", not ".svg".
	exts := make([]string, 0, len(pipeline.Extensions))
	for _, ext := range pipeline.Extensions {
		exts = append(exts, ext)
	}
	slices.SortFunc(exts, func(a, b string) int { return len(b) - len(a) })
	for _, ext := range exts {
		if strings.HasSuffix(output, ext) {
			return strings.TrimSuffix(output, ext), nil
		}
	}
	return output, nil
}
