package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/stats"
)

type Options struct {
	TopEmojis int // 0 = all
	TopWords  int // 0 = all
	Stop      stats.Stoplist
}

// Table is one titled result table. Bars, when set, holds the value each row
// is charted by in text output.
type Table struct {
	Key    string
	Title  string
	Header []string
	Rows   [][]string
	Bars   []int
}

// Headline returns the most-active-member line, e.g.
// "1,234 mensajes enviados por Ana". Empty for a chat without messages.
func Headline(rep *analysis.Report) string {
	top, ok := rep.TopMember()
	if !ok {
		return ""
	}
	return fmt.Sprintf("%s mensajes enviados por %s", humanize.Comma(int64(top.Messages)), top.Member)
}

// Tables builds every result table of a report, in display order.
func Tables(rep *analysis.Report, opts Options) []Table {
	var tables []Table

	t := Table{Key: "types", Title: "Tipos de mensaje", Header: []string{"Tipo", "Cantidad"}}
	for _, r := range rep.Types.Rows() {
		t.Rows = append(t.Rows, []string{r.Type, itoa(r.Count)})
		t.Bars = append(t.Bars, r.Count)
	}
	tables = append(tables, t)

	t = Table{Key: "emojis", Title: "Emojis", Header: []string{"Emoji", "Cantidad"}}
	for i, e := range rep.Emojis {
		if opts.TopEmojis > 0 && i >= opts.TopEmojis {
			break
		}
		t.Rows = append(t.Rows, []string{e.Emoji, itoa(e.Count)})
		t.Bars = append(t.Bars, e.Count)
	}
	tables = append(tables, t)

	t = Table{Key: "members", Title: "Miembros más activos", Header: []string{"#", "Miembro", "Mensaje"}}
	for _, m := range rep.Members {
		t.Rows = append(t.Rows, []string{itoa(m.Rank), m.Member, itoa(m.Messages)})
		t.Bars = append(t.Bars, m.Messages)
	}
	tables = append(tables, t)

	t = Table{
		Key:    "member_stats",
		Title:  "Estadísticas por miembro",
		Header: []string{"Miembro", "Mensajes", "Palabras por mensaje", "Multimedia", "Emojis", "Links", "Tiktoks"},
	}
	for _, m := range rep.MemberStats {
		t.Rows = append(t.Rows, []string{
			m.Member, itoa(m.Messages), strconv.FormatFloat(m.WordsPerMessage, 'f', 2, 64),
			itoa(m.Media), itoa(m.Emojis), itoa(m.Links), itoa(m.Tiktoks),
		})
	}
	tables = append(tables, t)

	t = Table{Key: "hours", Title: "Mensajes por hora", Header: []string{"rangoHora", "# Mensajes por hora"}}
	for _, h := range rep.Hours {
		t.Rows = append(t.Rows, []string{h.Range, itoa(h.Messages)})
		t.Bars = append(t.Bars, h.Messages)
	}
	tables = append(tables, t)

	t = Table{Key: "days", Title: "Mensajes por día", Header: []string{"Fecha", "# Mensajes por día"}}
	for _, d := range rep.Days {
		t.Rows = append(t.Rows, []string{d.Label, itoa(d.Messages)})
		t.Bars = append(t.Bars, d.Messages)
	}
	tables = append(tables, t)

	t = Table{Key: "words", Title: "Palabras más usadas", Header: []string{"Palabra", "Cantidad"}}
	for _, w := range rep.Words(opts.Stop, opts.TopWords) {
		t.Rows = append(t.Rows, []string{w.Word, itoa(w.Count)})
		t.Bars = append(t.Bars, w.Count)
	}
	tables = append(tables, t)

	return tables
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

var tsvEscaper = strings.NewReplacer("\t", " ", "\n", " ")

// TSV renders a table as tab-separated values with a header row.
func TSV(t Table) string {
	var b strings.Builder
	write := func(cells []string) {
		for i, c := range cells {
			if i > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(tsvEscaper.Replace(c))
		}
		b.WriteByte('\n')
	}
	write(t.Header)
	for _, row := range t.Rows {
		write(row)
	}
	return b.String()
}
