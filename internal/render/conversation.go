package render

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
)

const (
	colorSender = "\033[1;32m" // bold green
	colorHit    = "\033[43m"   // yellow background
)

// stampLayout matches the export's own day/month/year order.
const stampLayout = "02/01/06"

type ConversationOptions struct {
	Hit     int    // record index to center on, -1 for none
	Context int    // records before/after hit to show, negative for all
	Width   int    // wrap width (0 = no wrap)
	Query   string // search query for keyword highlighting
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	terms := strings.Fields(query)
	for _, term := range terms {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			end := pos + len(term)
			if end > len(text) {
				break
			}
			replacement := colorBoldRed + text[pos:end] + colorReset
			text = text[:pos] + replacement + text[end:]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// Conversation renders records as a transcript and returns the content and
// the 0-based line number of the hit record header (-1 if no hit).
func Conversation(records []features.Record, opts ConversationOptions) (string, int) {
	if len(records) == 0 {
		return "(chat vacío)", -1
	}

	start, end := 0, len(records)
	if opts.Hit >= 0 && opts.Hit < len(records) && opts.Context >= 0 {
		start = max(0, opts.Hit-opts.Context)
		end = min(len(records), opts.Hit+opts.Context+1)
	}

	var b strings.Builder
	hitLine := -1
	lineCount := 0

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	if start > 0 {
		writeLine(fmt.Sprintf("%s... (%d mensajes antes) ...%s", colorDim, start, colorReset))
	}

	for i := start; i < end; i++ {
		r := records[i]
		stamp := r.Date.Format(stampLayout) + " " + r.Time

		if i == opts.Hit {
			hitLine = lineCount
			writeLine(fmt.Sprintf("%s>> %s > %s <<%s", colorHit, r.Sender, stamp, colorReset))
		} else if r.IsSystemEvent() {
			writeLine(fmt.Sprintf("%s%s > %s%s", colorDim, r.Sender, stamp, colorReset))
		} else {
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", colorSender, r.Sender, colorReset, colorDim, stamp, colorReset))
		}

		if r.Body != "" {
			text := r.Body
			if r.Features.Media {
				text = colorDim + text + colorReset
			}
			writeLine(indentLines(highlightKeywords(text, opts.Query), "  "))
		}
	}

	if after := len(records) - end; after > 0 {
		writeLine(fmt.Sprintf("%s... (%d mensajes después) ...%s", colorDim, after, colorReset))
	}

	return b.String(), hitLine
}
