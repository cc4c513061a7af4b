package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fattree/pkg/fattree"
)

// statsOutput is the --json form of the stats command.
type statsOutput struct {
	Params fattree.Params `json:"params"`
	K      int            `json:"k"`
	Line   int            `json:"line"`
	fattree.Counts
}

// statsCommand creates the stats command, which prints the summary counts
// without building the topology.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		topo   topologyFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print host, switch, cable and transceiver counts",
		Example: `  fattree stats
  fattree stats --depth 4 --width 16 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.params(cmd, topo)
			counts, err := fattree.Summarize(p)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(statsOutput{Params: p, K: p.K(), Line: p.Line(), Counts: counts})
			}

			fmt.Println(StyleTitle.Render("Fat tree " + p.String()))
			printDetail("k = %d ports per direction, %s switches per level", p.K(), fattree.FormatCount(p.Line()))
			fmt.Println(countsTable(counts))
			printNewline()
			printNextStep("Render it", fmt.Sprintf("%s render -d %d -w %d", appName, p.Depth, p.Width))
			return nil
		},
	}

	topo.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the counts as JSON")

	return cmd
}
