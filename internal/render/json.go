package render

import (
	"encoding/json"
	"io"
	"time"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/analysis"
	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/stats"
)

type jsonReport struct {
	File        string              `json:"file,omitempty"`
	ChatKey     string              `json:"chat_key,omitempty"`
	AnalyzedAt  string              `json:"analyzed_at"`
	Records     int                 `json:"records"`
	Dropped     int                 `json:"dropped_lines"`
	Headline    string              `json:"headline,omitempty"`
	Types       []stats.TypeCount   `json:"tipos"`
	Emojis      []stats.EmojiCount  `json:"emojis"`
	Members     []stats.MemberCount `json:"miembros"`
	MemberStats []stats.MemberStat  `json:"estadisticas_por_miembro"`
	Hours       []stats.HourCount   `json:"mensajes_por_hora"`
	Days        []stats.DayCount    `json:"mensajes_por_dia"`
	Words       []stats.WordCount   `json:"palabras"`
}

// JSON writes the report as an indented JSON document. Row objects use the
// Spanish column names of the tables.
func JSON(w io.Writer, rep *analysis.Report, opts Options) error {
	emojis := rep.Emojis
	if opts.TopEmojis > 0 && len(emojis) > opts.TopEmojis {
		emojis = emojis[:opts.TopEmojis]
	}
	out := jsonReport{
		File:        rep.Meta.FilePath,
		ChatKey:     rep.Meta.ChatKey,
		AnalyzedAt:  rep.AnalyzedAt.UTC().Format(time.RFC3339),
		Records:     len(rep.Records),
		Dropped:     rep.Dropped,
		Headline:    Headline(rep),
		Types:       rep.Types.Rows(),
		Emojis:      nonNil(emojis),
		Members:     nonNil(rep.Members),
		MemberStats: nonNil(rep.MemberStats),
		Hours:       nonNil(rep.Hours),
		Days:        nonNil(rep.Days),
		Words:       nonNil(rep.Words(opts.Stop, opts.TopWords)),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(out)
}

// nonNil keeps empty tables as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
