package parse

import (
	"regexp"
	"strconv"
	"strings"
)

// entryPrefix matches the header every exported entry starts with, e.g.
// "28/03/23, 18:35 -" or "28/03/23, 18:35:07 -". Dates are not checked
// against the calendar here.
var entryPrefix = regexp.MustCompile(`^(0?[1-9]|[12][0-9]|3[01])/(0[1-9]|1[0-2])/([0-9]{2}), ([0-9]+):([0-9]{2})(?::([0-9]{2}))?\s? -`)

type Header struct {
	Day, Month, Year string
	Hour, Minute     string
	Second           string // empty when the export has minute precision
}

// Classify reports whether line begins a new entry, returning the parsed
// date/time prefix when it does.
func Classify(line string) (Header, bool) {
	m := entryPrefix.FindStringSubmatch(line)
	if m == nil {
		return Header{}, false
	}
	return Header{
		Day:    m[1],
		Month:  m[2],
		Year:   m[3],
		Hour:   m[4],
		Minute: m[5],
		Second: m[6],
	}, true
}

// StartsEntry is Classify without the parsed fields.
func StartsEntry(line string) bool {
	_, ok := Classify(line)
	return ok
}

type Entry struct {
	Date    string // "28/03/23"
	Time    string // "18:35" or "18:35:07"
	Sender  string
	Message string
	System  bool // no "Sender: " prefix; Sender holds the whole body
}

// Decompose splits an entry line into its fields:
//
//	"28/03/23, 18:58 - Efrain: Ando en reu" -> "28/03/23", "18:58", "Efrain", "Ando en reu"
//
// Only the first " - " and the first ": " are treated as separators.
func Decompose(line string) Entry {
	header, body, _ := strings.Cut(line, " - ")
	header = strings.TrimSpace(header)
	date, clock, _ := strings.Cut(header, ", ")

	e := Entry{Date: date, Time: strings.TrimSpace(clock)}
	sender, msg, found := strings.Cut(body, ": ")
	if !found {
		e.Sender = body
		e.System = true
		return e
	}
	e.Sender = sender
	e.Message = msg
	return e
}

// splitClock parses "H:MM" or "H:MM:SS" into hour and minute.
func splitClock(s string) (hour, minute int, ok bool) {
	h, rest, found := strings.Cut(s, ":")
	if !found {
		return 0, 0, false
	}
	mm, _, _ := strings.Cut(rest, ":")
	if len(mm) != 2 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
