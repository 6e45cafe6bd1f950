package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hypertower/pkg/graph"
	"github.com/matzehuels/hypertower/pkg/hypergraph"
	"github.com/matzehuels/hypertower/pkg/hypergraph/transform"
	"github.com/matzehuels/hypertower/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the interactive level browser.
func (c *CLI) inspectCommand() *cobra.Command {
	var inputFormat string

	cmd := &cobra.Command{
		Use:   "inspect [graph]",
		Short: "Browse the levels and subgraphs of a graph",
		Long: `Browse the levels and subgraphs of a graph interactively.

Select a hierarchical edge and press enter to descend into its subgraphs;
use [ and ] to switch between sibling subgraphs and esc to go back up.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGraph(args[0], inputFormat)
			if err != nil {
				return err
			}
			title, _ := g.Meta()[graph.MetaTitle].(string)
			if title == "" {
				title = args[0]
			}
			_, err = tea.NewProgram(newInspectModel(g, title), tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&inputFormat, "input-format", "", "graph format: json, toml, yaml (default: from extension)")
	return cmd
}

// =============================================================================
// inspectModel - Interactive level browser
// =============================================================================

// inspectFrame is one graph on the navigation stack.
type inspectFrame struct {
	title  string
	g      *hypergraph.Hypergraph
	table  pipeline.LevelTable
	rows   []inspectRow
	cursor int
	offset int

	// owner and sub locate the frame inside its parent; owner is nil for
	// the root graph.
	owner *hypergraph.Edge
	sub   int
}

type inspectRow struct {
	level int
	edge  pipeline.EdgeRef
}

func newInspectFrame(title string, g *hypergraph.Hypergraph) inspectFrame {
	f := inspectFrame{
		title: title,
		g:     g,
		table: pipeline.NewLevelTable(g, transform.ComputeLevels(g)),
	}
	for _, lv := range f.table.Levels {
		for _, e := range lv.Edges {
			f.rows = append(f.rows, inspectRow{level: lv.Index, edge: e})
		}
	}
	for _, e := range f.table.Orphans {
		f.rows = append(f.rows, inspectRow{level: -1, edge: e})
	}
	return f
}

func (f inspectFrame) selected() (inspectRow, bool) {
	if len(f.rows) == 0 {
		return inspectRow{}, false
	}
	return f.rows[f.cursor], true
}

// inspectModel is the bubbletea model of the inspect command.
type inspectModel struct {
	stack  []inspectFrame
	height int
}

func newInspectModel(g *hypergraph.Hypergraph, title string) inspectModel {
	return inspectModel{
		stack:  []inspectFrame{newInspectFrame(title, g)},
		height: 15,
	}
}

func (m inspectModel) top() *inspectFrame { return &m.stack[len(m.stack)-1] }

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "enter", "right", "l":
			m = m.descend()
		case "esc", "left", "h", "backspace":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			}
		case "[":
			m = m.sibling(-1)
		case "]":
			m = m.sibling(1)
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m inspectModel) move(delta int) {
	f := m.top()
	if len(f.rows) == 0 {
		return
	}
	f.cursor = min(max(f.cursor+delta, 0), len(f.rows)-1)
	if f.cursor < f.offset {
		f.offset = f.cursor
	}
	if f.cursor >= f.offset+m.height {
		f.offset = f.cursor - m.height + 1
	}
}

// descend pushes the first subgraph of the selected hierarchical edge.
func (m inspectModel) descend() inspectModel {
	row, ok := m.top().selected()
	if !ok || !row.edge.IsHierarchical() {
		return m
	}
	e, ok := m.top().g.Edge(row.edge.ID)
	if !ok {
		return m
	}
	m.stack = append(m.stack[:len(m.stack):len(m.stack)], subFrame(m.top().title, e, 0))
	return m
}

// sibling replaces the current subgraph by its neighbour in the owning edge.
func (m inspectModel) sibling(delta int) inspectModel {
	f := m.top()
	if f.owner == nil {
		return m
	}
	subs := f.owner.Subgraphs()
	next := f.sub + delta
	if next < 0 || next >= len(subs) {
		return m
	}
	parent := m.stack[len(m.stack)-2].title
	m.stack = append(m.stack[:len(m.stack)-1:len(m.stack)-1], subFrame(parent, f.owner, next))
	return m
}

func subFrame(parentTitle string, e *hypergraph.Edge, i int) inspectFrame {
	sub := e.Subgraphs()[i]
	title := fmt.Sprintf("%s › #%d[%d]", parentTitle, e.ID(), i)
	if t, _ := sub.Meta()[graph.MetaTitle].(string); t != "" {
		title += " " + t
	}
	f := newInspectFrame(title, sub)
	f.owner, f.sub = e, i
	return f
}

func (m inspectModel) View() string {
	f := m.top()
	var b strings.Builder

	b.WriteString(StyleTitle.Render(f.title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open subgraph  [ ] siblings  esc up  q quit"))
	b.WriteString("\n\n")

	if len(f.rows) == 0 {
		b.WriteString(listDimStyle.Render("  (no edges)"))
		b.WriteString("\n")
		return b.String()
	}

	end := min(f.offset+m.height, len(f.rows))
	for i := f.offset; i < end; i++ {
		row := f.rows[i]
		cursor := "  "
		if i == f.cursor {
			cursor = "▸ "
		}
		level := fmt.Sprintf("L%-3d", row.level)
		if row.level < 0 {
			level = "orph"
		}
		line := fmt.Sprintf("%s%s %-24s %s %s %s",
			cursor, level, row.edge.Name(),
			strings.Join(row.edge.Inputs, ","), iconArrow, strings.Join(row.edge.Outputs, ","))

		switch {
		case i == f.cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case row.level < 0:
			b.WriteString(StyleWarning.Render(line))
		case row.edge.IsHierarchical():
			b.WriteString(styleHierarchical.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("─", 40)))
	b.WriteString("\n")
	if row, ok := f.selected(); ok {
		fmt.Fprintf(&b, "  edge #%d  inputs %d  outputs %d", row.edge.ID, len(row.edge.Inputs), len(row.edge.Outputs))
		if row.edge.IsHierarchical() {
			fmt.Fprintf(&b, "  subgraphs %d", row.edge.Subgraphs)
		}
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d levels  %d orphans  depth %d",
		f.cursor+1, len(f.rows), len(f.table.Levels), len(f.table.Orphans), len(m.stack)-1)))

	return b.String()
}
