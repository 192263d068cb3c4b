package parse

import (
	"errors"
	"fmt"
	"time"
)

type ChatMeta struct {
	ChatKey  string
	FilePath string
	Mtime    time.Time
	Size     int64
}

type ChatRecord struct {
	Date   time.Time // calendar date, UTC midnight
	Time   string    // "HH:MM"
	Sender string
	Body   string
	Line   int // line number in original file where the entry starts

	system bool
}

// IsSystemEvent reports whether the entry had no "Sender: " prefix, in which
// case the whole body was taken as the sender.
func (r ChatRecord) IsSystemEvent() bool {
	return r.system
}

// Hour returns the hour component of Time.
func (r ChatRecord) Hour() int {
	h, _, _ := splitClock(r.Time)
	return h
}

type ParseResult struct {
	Meta    ChatMeta
	Records []ChatRecord
	Dropped int // unattachable lines discarded before the first entry
}

var (
	ErrMalformedDate = errors.New("malformed date")
	ErrMalformedTime = errors.New("malformed time")
)

// FormatError is returned when a surviving record cannot be given a valid
// date or time. It aborts the whole parse.
type FormatError struct {
	Line  int
	Value string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d: %v %q", e.Line, e.Err, e.Value)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
