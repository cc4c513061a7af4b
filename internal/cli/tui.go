package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/fattree/pkg/errors"
	"github.com/matzehuels/fattree/pkg/fattree"
	"github.com/matzehuels/fattree/pkg/selection"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	listCursorStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	panelStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim).Padding(0, 1)
)

const defaultListHeight = 12

// selectCommand creates the interactive host picker.
func (c *CLI) selectCommand() *cobra.Command {
	var topo topologyFlags

	cmd := &cobra.Command{
		Use:   "select",
		Short: "Pick two hosts interactively and show the path between them",
		Long: `Browse the hosts of a fat tree and select two of them to highlight the
cables on the path between them.

  ↑/↓ move   enter select   r reset   h controls   q quit

Selecting a third host starts a new pair; selecting the same host twice
clears it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := selection.New(c.params(cmd, topo))
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			final, err := tea.NewProgram(newSelectModel(ctx, ctrl), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}

			m := final.(selectModel)
			if r, ok := m.ctrl.Route(); ok {
				printRoute(m.ctrl.Topology(), r, m.selectedOrdinals())
			}
			return nil
		},
	}

	topo.register(cmd)
	return cmd
}

// =============================================================================
// selectModel - Interactive host selection
// =============================================================================

// selectModel is the bubbletea model for picking hosts. Selection semantics
// live in the controller; the model only tracks the cursor and the view.
type selectModel struct {
	ctx    context.Context
	ctrl   *selection.Controller
	cursor int
	offset int
	height int
	panel  bool
	err    error
}

func newSelectModel(ctx context.Context, ctrl *selection.Controller) selectModel {
	return selectModel{
		ctx:    ctx,
		ctrl:   ctrl,
		height: defaultListHeight,
		panel:  true,
	}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		hosts := len(m.ctrl.Topology().Hosts())
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m.moveTo(m.cursor-1, hosts)
		case "down", "j":
			m.moveTo(m.cursor+1, hosts)
		case "pgup":
			m.moveTo(m.cursor-m.height, hosts)
		case "pgdown":
			m.moveTo(m.cursor+m.height, hosts)
		case "home", "g":
			m.moveTo(0, hosts)
		case "end", "G":
			m.moveTo(hosts-1, hosts)
		case "enter", " ":
			_, m.err = m.ctrl.SelectHost(m.ctx, m.cursor)
		case "r":
			m.ctrl.Reset(m.ctx)
			m.err = nil
		case "h":
			m.panel = !m.panel
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-16, 5)
	}
	return m, nil
}

// moveTo places the cursor on host i, clamped, and scrolls the window.
func (m *selectModel) moveTo(i, hosts int) {
	m.cursor = min(max(i, 0), hosts-1)
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// selectedOrdinals returns the host ordinals of the current selection.
func (m selectModel) selectedOrdinals() []int {
	t := m.ctrl.Topology()
	var out []int
	for _, id := range m.ctrl.Selected() {
		if ord, ok := t.HostOrdinal(id); ok {
			out = append(out, ord)
		}
	}
	return out
}

func (m selectModel) View() string {
	var b strings.Builder
	t := m.ctrl.Topology()

	b.WriteString(StyleTitle.Render("Fat tree " + m.ctrl.Params().String()))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  r reset  h controls  q quit"))
	b.WriteString("\n\n")

	if m.panel {
		b.WriteString(m.controlPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.hostTable(t))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(t.Hosts()))))
	b.WriteString("\n\n")
	b.WriteString(m.status())
	b.WriteString("\n")

	return b.String()
}

// controlPanel shows the parameters and counts of the current topology.
func (m selectModel) controlPanel() string {
	p := m.ctrl.Params()
	header := fmt.Sprintf("depth %s  width %s  k %s",
		StyleNumber.Render(strconv.Itoa(p.Depth)),
		StyleNumber.Render(strconv.Itoa(p.Width)),
		StyleNumber.Render(strconv.Itoa(p.K())))
	return panelStyle.Render(header + "\n" + countsTable(m.ctrl.Topology().Counts()))
}

func (m selectModel) hostTable(t *fattree.Topology) string {
	hosts := t.Hosts()
	end := min(m.offset+m.height, len(hosts))

	selected := make(map[fattree.NodeID]bool)
	for _, id := range m.ctrl.Selected() {
		selected[id] = true
	}

	rows := make([][]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		n, _ := t.Node(hosts[i])
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		mark := ""
		if selected[n.ID] {
			mark = "●"
		}
		rows = append(rows, []string{
			cursor,
			"host " + strconv.Itoa(i),
			strconv.Itoa(int(n.ID)),
			n.Half.String(),
			fmt.Sprintf("%g, %g", n.X, n.Y),
			mark,
		})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Host", "Node", "Half", "Position", "").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			i := m.offset + row
			switch {
			case i >= len(hosts):
				return lipgloss.NewStyle()
			case selected[hosts[i]]:
				return listSelectedStyle
			case i == m.cursor:
				return listCursorStyle
			case col == 3 || col == 4:
				return listDimStyle
			default:
				return listNormalStyle
			}
		}).
		Render()
}

// status describes the selection state and, for a pair, its route.
func (m selectModel) status() string {
	if m.err != nil {
		return styleIconError.Render(iconError) + " " + errs.UserMessage(m.err)
	}

	ords := m.selectedOrdinals()
	switch m.ctrl.State() {
	case selection.OneSelected:
		return styleIconInfo.Render(iconInfo) + fmt.Sprintf(" host %d selected, pick a second host", ords[0])
	case selection.TwoSelected:
		r, _ := m.ctrl.Route()
		line := styleIconSuccess.Render(iconSuccess) +
			fmt.Sprintf(" host %d %s host %d: %d cables via %s",
				ords[0], iconArrow, ords[1], r.Hops(), describeNode(m.ctrl.Topology(), r.Ancestor))
		if !r.Complete {
			line += " " + StyleWarning.Render("(partial)")
		}
		return line
	default:
		return listDimStyle.Render("no hosts selected")
	}
}
