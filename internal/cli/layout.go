package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/graph"
	"github.com/matzehuels/fattree/pkg/pipeline"
)

// layoutCommand creates the layout command, which writes the positioned
// topology and its selection as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		topo    topologyFlags
		hosts   hostFlags
		output  string
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute node positions and cables as JSON",
		Long: `Compute the positions of every switch and host and the cables between them.

With --from and --to the two hosts are selected and the cables on the path
between them are marked as highlighted.`,
		Example: `  fattree layout -d 3 -w 8 -o tree.json
  fattree layout --from 0 --to 127 | jq .highlight`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.params(cmd, topo)
			selected, err := hosts.resolve(p)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context())
			if err != nil {
				return err
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			l, hit, err := runner.BuildLayoutWithCacheInfo(cmd.Context(), pipeline.Options{
				Depth:   p.Depth,
				Width:   p.Width,
				Hosts:   selected,
				Refresh: refresh,
			})
			if err != nil {
				return err
			}
			prog.done("Laid out " + fattree.FormatCount(len(l.Nodes)) + " nodes")

			if output == "" {
				return graph.WriteLayout(l, cmd.OutOrStdout())
			}
			if err := graph.WriteLayoutFile(l, output); err != nil {
				return err
			}
			printSuccess("Layout written")
			printFile(output)
			printStats(len(l.Nodes), len(l.Edges), hit)
			return nil
		},
	}

	topo.register(cmd)
	hosts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if the layout is cached")

	return cmd
}
