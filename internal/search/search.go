package search

import (
	"strings"
	"time"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
)

type Result struct {
	Index   int // position in the record slice
	Line    int
	Date    time.Time
	Time    string
	Sender  string
	Snippet string
}

type Options struct {
	Query  string
	Sender string    // "" = all, otherwise case-insensitive exact match
	Since  time.Time // zero = no filter
	Limit  int
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match (or case folding moved byte offsets), return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	// find rune position of idx
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	// wrap the matched part with markers
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search returns records whose body contains every whitespace-separated
// term of the query, case-insensitively, in chat order.
func Search(records []features.Record, opts Options) []Result {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}
	terms := strings.Fields(strings.ToLower(opts.Query))
	if len(terms) == 0 {
		return nil
	}

	var results []Result
	for i, r := range records {
		if opts.Sender != "" && !strings.EqualFold(r.Sender, opts.Sender) {
			continue
		}
		if !opts.Since.IsZero() && r.Date.Before(opts.Since) {
			continue
		}
		if !matchAll(strings.ToLower(r.Body), terms) {
			continue
		}
		results = append(results, Result{
			Index:   i,
			Line:    r.Line,
			Date:    r.Date,
			Time:    r.Time,
			Sender:  r.Sender,
			Snippet: makeSnippet(oneLine(r.Body), terms[0], 40),
		})
		if len(results) >= opts.Limit {
			break
		}
	}
	return results
}

func matchAll(body string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(body, t) {
			return false
		}
	}
	return true
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
