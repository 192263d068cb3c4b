package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// linesPerItem is the number of terminal lines each list entry occupies.
const linesPerItem = 2

// item is one entry of the left panel: a result table, or a search hit when
// a query is active.
type item struct {
	title  string
	detail string
	table  int // index into model.tables, -1 for hits
	hit    int // index into model.hits, -1 for tables
}

func (m model) items() []item {
	if m.query == "" {
		out := make([]item, len(m.tables))
		for i, t := range m.tables {
			out[i] = item{
				title:  t.Title,
				detail: fmt.Sprintf("%d filas", len(t.Rows)),
				table:  i,
				hit:    -1,
			}
		}
		return out
	}
	out := make([]item, len(m.hits))
	for i, h := range m.hits {
		out[i] = item{
			title:  fmt.Sprintf("%s %s %s", h.Date.Format("02/01/06"), h.Time, h.Sender),
			detail: h.Snippet,
			table:  -1,
			hit:    i,
		}
	}
	return out
}

// renderList renders the left panel with scrolling.
func (m model) renderList(width, height int) string {
	items := m.items()
	if len(items) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("Sin resultados")
		return empty
	}

	var lines []string
	for i, it := range items {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatItem(it, width, i == m.cursor)...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatItem formats a list entry as two lines:
//
//	line 1: [>] title
//	line 2:    detail (dimmed)
func formatItem(it item, width int, selected bool) []string {
	titleMax := width - 2
	if titleMax < 0 {
		titleMax = 0
	}
	title := it.title
	if runewidth.StringWidth(title) > titleMax {
		title = runewidth.Truncate(title, titleMax, "")
	}

	line1 := "  " + title
	if selected {
		line1 = styleListSelected.Render("> ") + title
	}

	detail := strings.ReplaceAll(it.detail, "\n", " ")
	detail = strings.ReplaceAll(detail, "\t", " ")
	detail = strings.ReplaceAll(detail, ">>>", "")
	detail = strings.ReplaceAll(detail, "<<<", "")
	detailMax := width - 4 // indent
	if detailMax < 0 {
		detailMax = 0
	}
	if runewidth.StringWidth(detail) > detailMax {
		detail = runewidth.Truncate(detail, detailMax, "")
	}
	line2 := "    " + lipgloss.NewStyle().Foreground(colorDim).Render(detail)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := listHeight / linesPerItem
	if visibleItems < 1 {
		visibleItems = 1
	}
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}
