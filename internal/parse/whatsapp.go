package parse

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const maxLineSize = 10 * 1024 * 1024 // 10MB

// dateLayout is day/month/two-digit year; the day may omit its leading zero.
const dateLayout = "2/01/06"

type Options struct {
	// DropSystemEvents omits entries without a "Sender: " prefix
	// ("X changed the group icon"). They are kept by default.
	DropSystemEvents bool
	Logger           *zerolog.Logger
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// pending is the entry being accumulated while continuation lines arrive.
type pending struct {
	entry Entry
	parts []string
	line  int
}

// ParseFile reads a WhatsApp text export fully into memory, releases the
// file and parses it.
func ParseFile(filePath string, opts Options) (*ParseResult, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	data, err := io.ReadAll(f)
	f.Close()
	if err != nil {
		return nil, err
	}

	result, err := Parse(bytes.NewReader(data), opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filePath, err)
	}
	result.Meta = ChatMeta{
		ChatKey:  ChatKey(filePath),
		FilePath: filePath,
		Mtime:    info.ModTime(),
		Size:     info.Size(),
	}
	return result, nil
}

// ChatKey derives a stable identifier for an export from its path.
func ChatKey(filePath string) string {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		abs = filePath
	}
	return "whatsapp:" + strings.TrimSuffix(abs, filepath.Ext(abs))
}

// Parse consumes r line by line. The first line (the end-to-end encryption
// banner) is always discarded. Lines starting with a date/time prefix open a
// new record; any other line is appended to the current record's body, or
// dropped when there is no current record yet.
func Parse(r io.Reader, opts Options) (*ParseResult, error) {
	log := opts.logger()
	result := &ParseResult{}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var cur *pending
	flush := func() error {
		if cur == nil {
			return nil
		}
		// a header without a sender is the blank remainder of a malformed
		// line; it and its continuation lines are unattachable
		if strings.TrimSpace(cur.entry.Sender) == "" {
			result.Dropped += 1 + len(cur.parts)
			log.Debug().Int("line", cur.line).Int("lines", 1+len(cur.parts)).Msg("parse: dropped entry without sender")
			cur = nil
			return nil
		}
		rec, keep, err := finish(cur, opts)
		cur = nil
		if err != nil {
			return err
		}
		if keep {
			result.Records = append(result.Records, rec)
		}
		return nil
	}

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		if lineNum == 1 {
			continue
		}
		line := strings.TrimSpace(scanner.Text())

		if StartsEntry(line) {
			if err := flush(); err != nil {
				return nil, err
			}
			e := Decompose(line)
			cur = &pending{entry: e, line: lineNum}
			if e.Message != "" {
				cur.parts = append(cur.parts, e.Message)
			}
			continue
		}

		if cur == nil {
			result.Dropped++
			log.Debug().Int("line", lineNum).Msg("parse: dropped line before first entry")
			continue
		}
		if line == "" {
			continue
		}
		cur.parts = append(cur.parts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}

	log.Debug().
		Int("lines", lineNum).
		Int("records", len(result.Records)).
		Int("dropped", result.Dropped).
		Msg("parse: done")
	return result, nil
}

func finish(p *pending, opts Options) (ChatRecord, bool, error) {
	body := strings.Join(p.parts, " ")
	if p.entry.System && opts.DropSystemEvents {
		return ChatRecord{}, false, nil
	}

	date, err := time.Parse(dateLayout, p.entry.Date)
	if err != nil {
		return ChatRecord{}, false, &FormatError{Line: p.line, Value: p.entry.Date, Err: ErrMalformedDate}
	}
	hour, minute, ok := splitClock(p.entry.Time)
	if !ok {
		return ChatRecord{}, false, &FormatError{Line: p.line, Value: p.entry.Time, Err: ErrMalformedTime}
	}

	return ChatRecord{
		Date:   date,
		Time:   fmt.Sprintf("%02d:%02d", hour, minute),
		Sender: p.entry.Sender,
		Body:   body,
		Line:   p.line,
		system: p.entry.System,
	}, true, nil
}
