package render

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
)

const (
	colorReset   = "\033[0m"
	colorTitle   = "\033[1;34m" // bold blue
	colorHeader  = "\033[1m"
	colorDim     = "\033[2m"
	colorBar     = "\033[32m"
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

// maxBarWidth is the widest bar drawn next to a charted row.
const maxBarWidth = 30

// Text writes the report as aligned plain-text tables. With color, titles
// and bars are ANSI colored.
func Text(w io.Writer, rep *analysis.Report, opts Options, color bool) error {
	paint := func(code, s string) string {
		if !color {
			return s
		}
		return code + s + colorReset
	}

	var b strings.Builder
	if h := Headline(rep); h != "" {
		b.WriteString(paint(colorTitle, h))
		b.WriteString("\n\n")
	}
	for i, t := range Tables(rep, opts) {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(paint(colorTitle, t.Title))
		b.WriteString("\n")
		writeTextTable(&b, t, paint)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// TextTable renders a single table without its title.
func TextTable(t Table) string {
	var b strings.Builder
	writeTextTable(&b, t, func(_, s string) string { return s })
	return b.String()
}

func writeTextTable(b *strings.Builder, t Table, paint func(code, s string) string) {
	if len(t.Rows) == 0 {
		b.WriteString(paint(colorDim, "  (sin datos)"))
		b.WriteString("\n")
		return
	}

	widths := make([]int, len(t.Header))
	for i, h := range t.Header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	peak := 0
	for _, v := range t.Bars {
		if v > peak {
			peak = v
		}
	}

	b.WriteString("  ")
	b.WriteString(paint(colorHeader, joinCells(t.Header, widths)))
	b.WriteString("\n")
	for i, row := range t.Rows {
		b.WriteString("  ")
		line := joinCells(row, widths)
		if i < len(t.Bars) && peak > 0 {
			line += "  " + paint(colorBar, bar(t.Bars[i], peak))
		}
		b.WriteString(strings.TrimRight(line, " "))
		b.WriteString("\n")
	}
}

// joinCells pads each cell to its column width by display columns, so emoji
// and accented names line up.
func joinCells(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, c := range cells {
		padded[i] = runewidth.FillRight(c, widths[i])
	}
	return strings.Join(padded, "  ")
}

func bar(v, peak int) string {
	n := v * maxBarWidth / peak
	if n == 0 && v > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}
