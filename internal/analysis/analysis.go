// Package analysis runs the full pipeline over one export: parse, extract
// per-message features, then every aggregate table.
package analysis

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/parse"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/stats"
)

type Options struct {
	Parse         parse.Options
	MediaSentinel string
	LinkMarker    string
}

// Fingerprint identifies the settings that change what a report contains.
// Empty values resolve to their defaults first, so an unset sentinel and the
// explicit default compare equal.
func (o Options) Fingerprint() string {
	media, link := o.MediaSentinel, o.LinkMarker
	if media == "" {
		media = features.DefaultMediaSentinel
	}
	if link == "" {
		link = features.DefaultLinkMarker
	}
	return fmt.Sprintf("media=%q link=%q drop_system=%t", media, link, o.Parse.DropSystemEvents)
}

// Report holds everything derived from a single chat export. Each table is
// computed independently from Records.
type Report struct {
	Meta    parse.ChatMeta
	Options Options
	Records []features.Record
	Dropped int

	Types       stats.TypeBreakdown
	Emojis      []stats.EmojiCount
	Members     []stats.MemberCount
	MemberStats []stats.MemberStat
	Hours       []stats.HourCount
	Days        []stats.DayCount
	Corpus      string

	AnalyzedAt time.Time
}

// Analyze parses r and builds a report. A malformed date or time on any
// entry line aborts the whole analysis.
func Analyze(r io.Reader, opts Options) (*Report, error) {
	result, err := parse.Parse(r, opts.Parse)
	if err != nil {
		return nil, err
	}
	return build(result, opts), nil
}

// AnalyzeFile is Analyze over a file on disk; Meta carries its path, key,
// mtime and size.
func AnalyzeFile(filePath string, opts Options) (*Report, error) {
	result, err := parse.ParseFile(filePath, opts.Parse)
	if err != nil {
		return nil, err
	}
	return build(result, opts), nil
}

func build(result *parse.ParseResult, opts Options) *Report {
	x := features.NewExtractor(opts.MediaSentinel, opts.LinkMarker)
	records := x.ExtractAll(result.Records)

	rep := &Report{
		Meta:        result.Meta,
		Options:     opts,
		Records:     records,
		Dropped:     result.Dropped,
		Types:       stats.Types(records),
		Emojis:      stats.EmojiFrequency(records),
		Members:     stats.MemberRanking(records),
		MemberStats: stats.MemberStats(records),
		Hours:       stats.HourHistogram(records),
		Days:        stats.DayHistogram(records),
		Corpus:      stats.WordCorpus(records),
		AnalyzedAt:  time.Now(),
	}

	log := logger(opts)
	log.Debug().
		Str("chat", rep.Meta.ChatKey).
		Int("records", len(records)).
		Int("members", len(rep.Members)).
		Int("emojis", rep.Types.Emojis).
		Msg("analysis complete")
	return rep
}

func logger(opts Options) *zerolog.Logger {
	if opts.Parse.Logger != nil {
		return opts.Parse.Logger
	}
	nop := zerolog.Nop()
	return &nop
}

// TopMember returns the most active sender; false for a chat without records.
func (r *Report) TopMember() (stats.MemberCount, bool) {
	if len(r.Members) == 0 {
		return stats.MemberCount{}, false
	}
	return r.Members[0], true
}

// Words returns the word-frequency table of the corpus.
func (r *Report) Words(stop stats.Stoplist, limit int) []stats.WordCount {
	return stats.WordFrequency(r.Corpus, stop, limit)
}
