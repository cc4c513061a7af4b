package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/selection"
)

// pathCommand creates the path command, which traces the route between two
// hosts and prints the highlighted cables.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		topo   topologyFlags
		hosts  hostFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:     "path",
		Short:   "Trace the path between two hosts",
		Example: `  fattree path --from 0 --to 127`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.params(cmd, topo)
			selected, err := hosts.resolve(p)
			if err != nil {
				return err
			}
			if len(selected) != 2 {
				return errs.New(errs.ErrCodeInvalidInput, "path needs both --from and --to")
			}

			route, ctrl, err := c.tracePath(cmd, p, selected)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(route)
			}
			printRoute(ctrl.Topology(), route, selected)
			return nil
		},
	}

	topo.register(cmd)
	hosts.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the route as JSON")

	return cmd
}

// tracePath selects both hosts on a fresh controller and returns the route.
func (c *CLI) tracePath(cmd *cobra.Command, p fattree.Params, hosts []int) (fattree.Route, *selection.Controller, error) {
	ctrl, err := selection.New(p, selection.WithLogger(c.Logger))
	if err != nil {
		return fattree.Route{}, nil, err
	}
	for _, h := range hosts {
		if _, err := ctrl.SelectHost(cmd.Context(), h); err != nil {
			return fattree.Route{}, nil, err
		}
	}
	route, _ := ctrl.Route()
	return route, ctrl, nil
}

func printRoute(t *fattree.Topology, r fattree.Route, hosts []int) {
	printSuccess("Path from host %d to host %d", hosts[0], hosts[1])
	printKeyValue("Hops", strconv.Itoa(r.Hops()))
	printKeyValue("Ancestor", describeNode(t, r.Ancestor))
	printKeyValue("Up", joinIDs(r.Up))
	printKeyValue("Down", joinIDs(r.Down))
	printKeyValue("Cables", joinIDs(r.Edges))
	if !r.Complete {
		printWarning("Trace dead-ended; the highlight uses the partial paths")
	}
	if !r.Shared {
		printWarning("Paths share no switch; the ancestor is the top of the first path")
	}
}

// describeNode formats a node as e.g. "switch 3 (center, level 0)".
func describeNode(t *fattree.Topology, id fattree.NodeID) string {
	n, ok := t.Node(id)
	if !ok {
		return "none"
	}
	return fmt.Sprintf("%s %d (%s, level %d)", n.Kind, n.ID, n.Half, n.Level)
}

func joinIDs[T ~int](ids []T) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(int(id))
	}
	return strings.Join(parts, " ")
}
