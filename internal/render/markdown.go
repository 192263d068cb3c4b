package render

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
)

// Markdown writes the report as a document of GitHub-flavored tables.
func Markdown(w io.Writer, rep *analysis.Report, opts Options) error {
	_, err := io.WriteString(w, markdown(rep, opts))
	return err
}

func markdown(rep *analysis.Report, opts Options) string {
	var b strings.Builder
	title := "Chat"
	if rep.Meta.FilePath != "" {
		title = rep.Meta.FilePath
	}
	fmt.Fprintf(&b, "# %s\n\n", escapeCell(title))
	if h := Headline(rep); h != "" {
		fmt.Fprintf(&b, "**%s**\n\n", escapeCell(h))
	}
	for _, t := range Tables(rep, opts) {
		fmt.Fprintf(&b, "## %s\n\n", t.Title)
		if len(t.Rows) == 0 {
			b.WriteString("_sin datos_\n\n")
			continue
		}
		writeRow(&b, t.Header)
		seps := make([]string, len(t.Header))
		for i := range seps {
			seps[i] = "---"
		}
		writeRow(&b, seps)
		for _, row := range t.Rows {
			writeRow(&b, row)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeRow(b *strings.Builder, cells []string) {
	escaped := make([]string, len(cells))
	for i, c := range cells {
		escaped[i] = escapeCell(c)
	}
	b.WriteString("| ")
	b.WriteString(strings.Join(escaped, " | "))
	b.WriteString(" |\n")
}

var cellEscaper = strings.NewReplacer(
	`\`, `\\`,
	`|`, `\|`,
	`*`, `\*`,
	`_`, `\_`,
	"`", "\\`",
	`<`, `\<`,
	"\n", " ",
)

func escapeCell(s string) string {
	return cellEscaper.Replace(s)
}

var md = goldmark.New(goldmark.WithExtensions(extension.Table))

// HTML writes the Markdown rendition converted to a standalone HTML page.
func HTML(w io.Writer, rep *analysis.Report, opts Options) error {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown(rep, opts)), &body); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	title := html.EscapeString(rep.Meta.FilePath)
	_, err := fmt.Fprintf(w, htmlPage, title, body.String())
	return err
}

const htmlPage = `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; }
table { border-collapse: collapse; margin-bottom: 1.5rem; }
th, td { border: 1px solid #ccc; padding: .25rem .75rem; }
th { background: #f4f4f4; }
strong { color: #FF4B4B; }
</style>
</head>
<body>
%s</body>
</html>
`
