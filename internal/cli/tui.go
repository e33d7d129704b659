package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/anchorbox/pkg/layout"
	"github.com/matzehuels/anchorbox/pkg/scene"
)

var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	headerStyle  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Placement table
// =============================================================================

// placementRows formats one table row per box.
func placementRows(res *layout.Result) [][]string {
	rows := make([][]string, len(res.Boxes))
	for i, pl := range res.Boxes {
		rect, size := "-", "-"
		if pl.Visible {
			rect = pl.Rect.String()
			size = fmt.Sprintf("%dx%d", pl.Size.Width, pl.Size.Height)
		}
		rows[i] = []string{pl.Name(), rect, size, formatMargins(pl.Margins)}
	}
	return rows
}

// formatMargins prints resolved margins as "l t r b", "-" for unresolved.
func formatMargins(ms [4]layout.Margin) string {
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = "-"
		if m.Valid {
			parts[i] = strconv.Itoa(m.Px)
		}
	}
	return strings.Join(parts, " ")
}

// placementTable renders the result. cursor < 0 highlights nothing.
func placementTable(res *layout.Result, rows [][]string, cursor int) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Box", "Rect", "Size", "Margins l t r b").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row >= len(res.Boxes) {
				return base
			}
			if !res.Boxes[row].Visible {
				base = base.Inherit(styleCollapsed)
			}
			if row == cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			if col == 3 {
				return base.Foreground(colorGray)
			}
			return base
		})
}

// =============================================================================
// InspectModel - Interactive layout inspection
// =============================================================================

// InspectModel is the bubbletea model of the inspect command. The list shows
// every box; the panel below describes the declaration and placement of the
// selected one.
type InspectModel struct {
	Title  string
	Result *layout.Result
	Decls  []scene.BoxDecl
	Cursor int
	Height int
	Offset int

	rows [][]string
}

// NewInspectModel creates the model. decls must be index-aligned with the
// result's boxes.
func NewInspectModel(title string, res *layout.Result, decls []scene.BoxDecl) InspectModel {
	return InspectModel{
		Title:  title,
		Result: res,
		Decls:  decls,
		Height: 12,
		rows:   placementRows(res),
	}
}

func (m InspectModel) Init() tea.Cmd {
	return nil
}

func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
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
			if m.Cursor < len(m.rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "home", "g":
			m.Cursor, m.Offset = 0, 0
		case "end", "G":
			m.Cursor = max(0, len(m.rows)-1)
			m.Offset = max(0, len(m.rows)-m.Height)
		}
	case tea.WindowSizeMsg:
		// title, help, panel and borders
		m.Height = max(3, msg.Height-16)
	}
	return m, nil
}

func (m InspectModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %dx%d", m.Result.Width, m.Result.Height)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.rows))
	window := &layout.Result{Boxes: m.Result.Boxes[m.Offset:end]}
	b.WriteString(placementTable(window, m.rows[m.Offset:end], m.Cursor-m.Offset).Render())
	b.WriteString("\n\n")

	if m.Cursor < len(m.Result.Boxes) {
		b.WriteString(m.detail(m.Cursor))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.rows))))
	return b.String()
}

// detail describes box i.
func (m InspectModel) detail(i int) string {
	pl := m.Result.Boxes[i]
	var lines []string
	kv := func(k, v string) {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorGray).Width(10).Render(k)+" "+StyleValue.Render(v))
	}

	kv("box", pl.Name())
	if i < len(m.Decls) {
		d := m.Decls[i]
		kv("size", orDefault(d.Width, "wrap")+" x "+orDefault(d.Height, "wrap"))
		if d.Anchor != nil {
			kv("anchors", formatEdges(*d.Anchor))
		}
		if d.Margin != nil {
			kv("margins", formatEdges(*d.Margin))
		}
	}
	if pl.Visible {
		kv("rect", pl.Rect.String())
	} else {
		kv("rect", styleCollapsed.Render("collapsed"))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(colorDim).
		PaddingLeft(1).
		Render(strings.Join(lines, "\n"))
}

func formatEdges(e scene.Edges) string {
	var parts []string
	for _, f := range []struct{ name, v string }{
		{"left", e.Left}, {"top", e.Top}, {"right", e.Right}, {"bottom", e.Bottom},
	} {
		if f.v != "" {
			parts = append(parts, f.name+"="+f.v)
		}
	}
	return strings.Join(parts, " ")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
