// Package stats holds the aggregators over a feature-augmented record
// sequence. Every aggregator is a pure function of its input and recomputes
// its table from scratch.
package stats

import "github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"

// Type labels, as shown in the breakdown table.
const (
	TypeMessages = "Mensajes"
	TypeMedia    = "Multimedia"
	TypeEmojis   = "Emojis"
	TypeLinks    = "Links"
	TypeTiktoks  = "Tiktoks"
)

type TypeBreakdown struct {
	Messages int
	Media    int
	Emojis   int
	Links    int
	Tiktoks  int
}

type TypeCount struct {
	Type  string `json:"Tipo"`
	Count int    `json:"Cantidad"`
}

func Types(records []features.Record) TypeBreakdown {
	t := TypeBreakdown{Messages: len(records)}
	for _, r := range records {
		if r.Features.Media {
			t.Media++
		}
		t.Emojis += len(r.Features.Emojis)
		t.Links += r.Features.URLCount
		t.Tiktoks += r.Features.LinkCount
	}
	return t
}

// Rows returns the breakdown as (type, count) rows in display order.
func (t TypeBreakdown) Rows() []TypeCount {
	return []TypeCount{
		{TypeMessages, t.Messages},
		{TypeMedia, t.Media},
		{TypeEmojis, t.Emojis},
		{TypeLinks, t.Links},
		{TypeTiktoks, t.Tiktoks},
	}
}
