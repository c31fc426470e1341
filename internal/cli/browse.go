package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
)

// browseCommand creates the browse command: an interactive package
// list with a dependency detail pane.
func (c *CLI) browseCommand() *cobra.Command {
	var flags workspaceFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse packages and their dependencies interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := c.loadNodeSet(cmd.Context(), &flags)
			if err != nil {
				return err
			}
			model := newBrowseModel(set)
			_, err = tea.NewProgram(model, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	flags.register(cmd)
	return cmd
}

var (
	browseSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	browseNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	browseDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseModel is the bubbletea model for the package browser: a
// scrollable list of selected packages on top, the highlighted
// package's per-category dependencies below.
type browseModel struct {
	set    *pkggraph.NodeSet
	ids    []pkggraph.NodeID
	cursor int
	height int
	offset int
}

func newBrowseModel(set *pkggraph.NodeSet) browseModel {
	return browseModel{
		set:    set,
		ids:    set.SelectedIDs(),
		height: 15,
	}
}

func (m browseModel) Init() tea.Cmd { return nil }

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(m.ids)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.height {
					m.offset = m.cursor - m.height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 12
		if m.height < 5 {
			m.height = 5
		}
	}
	return m, nil
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Workspace Packages"))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	if len(m.ids) == 0 {
		b.WriteString(browseDimStyle.Render("  no packages selected"))
		b.WriteString("\n")
		return b.String()
	}

	end := m.offset + m.height
	if end > len(m.ids) {
		end = len(m.ids)
	}
	for i := m.offset; i < end; i++ {
		desc := m.set.At(m.ids[i]).Descriptor
		line := fmt.Sprintf("  %-30s %s", desc.Name, browseDimStyle.Render(desc.Path))
		if i == m.cursor {
			line = browseSelectedStyle.Render("▸ " + strings.TrimPrefix(line, "  "))
		} else {
			line = browseNormalStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.detailView())
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.ids))))
	return b.String()
}

// detailView renders the highlighted package's dependencies grouped by
// category in fixed category order.
func (m browseModel) detailView() string {
	node := m.set.At(m.ids[m.cursor])
	desc := node.Descriptor

	var b strings.Builder
	b.WriteString(StyleTitle.Render(desc.Name))
	b.WriteString(browseDimStyle.Render(fmt.Sprintf("  (%s)", desc.Type)))
	b.WriteString("\n")
	for _, c := range pkggraph.Categories {
		deps := desc.Dependencies[c]
		if len(deps) == 0 {
			continue
		}
		b.WriteString(browseDimStyle.Render(fmt.Sprintf("  %-6s", string(c))))
		b.WriteString(browseNormalStyle.Render(strings.Join(deps, ", ")))
		b.WriteString("\n")
	}
	if len(node.RunClosure) > 0 {
		b.WriteString(browseDimStyle.Render(fmt.Sprintf("  %d packages in the transitive run closure", len(node.RunClosure))))
		b.WriteString("\n")
	}
	return b.String()
}
