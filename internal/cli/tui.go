package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/nexusfab/tiletopo/pkg/intern"
	"github.com/nexusfab/tiletopo/pkg/tiletype"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxWiresShown caps the wire list under the selected neighbour.
const maxWiresShown = 12

// =============================================================================
// BrowserModel - Interactive tile-type browser
// =============================================================================

// BrowserModel is the bubbletea model for browsing the tile types of a
// device and the neighbours of each tile type.
type BrowserModel struct {
	Registry *tiletype.Registry
	IDs      *intern.Table

	Names  []string
	Cursor int
	Height int
	Offset int

	// Open is the tile type whose neighbours are shown, nil in the list view.
	Open            *tiletype.TileType
	Neighbours      []tiletype.Neighbour
	NeighbourCursor int
}

// NewBrowserModel creates a browser over reg.
func NewBrowserModel(reg *tiletype.Registry, ids *intern.Table) BrowserModel {
	return BrowserModel{
		Registry: reg,
		IDs:      ids,
		Names:    reg.Names(),
		Height:   15,
	}
}

func (m BrowserModel) Init() tea.Cmd {
	return nil
}

func (m BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Open != nil {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m BrowserModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
			if m.Cursor < m.Offset {
				m.Offset = m.Cursor
			}
		}
	case "down", "j":
		if m.Cursor < len(m.Names)-1 {
			m.Cursor++
			if m.Cursor >= m.Offset+m.Height {
				m.Offset = m.Cursor - m.Height + 1
			}
		}
	case "enter":
		if len(m.Names) == 0 {
			return m, nil
		}
		tt, ok := m.Registry.Get(m.Names[m.Cursor])
		if !ok {
			return m, nil
		}
		m.Open = tt
		m.Neighbours = tt.Neighbours()
		m.NeighbourCursor = 0
	}
	return m, nil
}

func (m BrowserModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc", "backspace", "left", "h":
		m.Open = nil
		m.Neighbours = nil
	case "up", "k":
		if m.NeighbourCursor > 0 {
			m.NeighbourCursor--
		}
	case "down", "j":
		if m.NeighbourCursor < len(m.Neighbours)-1 {
			m.NeighbourCursor++
		}
	}
	return m, nil
}

func (m BrowserModel) View() string {
	if m.Open != nil {
		return m.detailView()
	}
	return m.listView()
}

func (m BrowserModel) listView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s %s", m.Registry.Family, m.Registry.Device)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Names))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		tt, _ := m.Registry.Get(m.Names[i])
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		rows = append(rows, []string{
			cursor,
			tt.Name,
			strconv.Itoa(len(tt.WireIDs())),
			strconv.Itoa(len(tt.Neighbours())),
			strconv.Itoa(len(tt.Bels)),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Tile type", "Wires", "Neighbours", "Bels").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Names) {
				return lipgloss.NewStyle()
			}
			tt, _ := m.Registry.Get(m.Names[idx])
			base := lipgloss.NewStyle()
			switch {
			case idx == m.Cursor:
				return base.Foreground(colorGreen).Bold(true)
			case tt.HasRouting():
				return base.Foreground(colorWhite)
			}
			return base.Foreground(colorDim)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", min(m.Cursor+1, len(m.Names)), len(m.Names))))

	return b.String()
}

func (m BrowserModel) detailView() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Open.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  esc back  q quit"))
	b.WriteString("\n\n")

	if len(m.Neighbours) == 0 {
		b.WriteString(listDimStyle.Render("  no neighbours"))
		b.WriteString("\n")
		return b.String()
	}

	for i, n := range m.Neighbours {
		cursor := "  "
		if i == m.NeighbourCursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-12s %-13s %s", cursor, n.String(), n.Kind.String(),
			listDimStyle.Render(fmt.Sprintf("%d wires", len(m.Open.NeighbourWireIDs(n)))))
		if i == m.NeighbourCursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")

	ids := m.Open.NeighbourWireIDs(m.Neighbours[m.NeighbourCursor])
	for i, id := range ids {
		if i == maxWiresShown {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  … %d more", len(ids)-maxWiresShown)))
			b.WriteString("\n")
			break
		}
		name := m.IDs.MustName(id)
		if m.Open.IsDriven(id) {
			name = StyleSuccess.Render(name)
		}
		b.WriteString("  " + name + "\n")
	}

	return b.String()
}
