package stats

import (
	"sort"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
)

type MemberCount struct {
	Rank     int    `json:"#"`
	Member   string `json:"Miembro"`
	Messages int    `json:"Mensaje"`
}

// MemberRanking counts messages per sender, most active first. Ties are
// broken by sender name so the ranking is deterministic. Ranks start at 1.
func MemberRanking(records []features.Record) []MemberCount {
	counts := make(map[string]int)
	for _, r := range records {
		counts[r.Sender]++
	}

	out := make([]MemberCount, 0, len(counts))
	for member, n := range counts {
		out = append(out, MemberCount{Member: member, Messages: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Messages != out[j].Messages {
			return out[i].Messages > out[j].Messages
		}
		return out[i].Member < out[j].Member
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

type MemberStat struct {
	Member          string  `json:"Miembro"`
	Messages        int     `json:"Mensajes"`
	WordsPerMessage float64 `json:"Palabras por mensaje"`
	Media           int     `json:"Multimedia"`
	Emojis          int     `json:"Emojis"`
	Links           int     `json:"Links"`
	Tiktoks         int     `json:"Tiktoks"`
}

// MemberStats builds one row per sender that wrote at least one text
// message, in order of their first text message. Media and empty bodies form
// a separate partition: they add to a member's Messages and Media counts but
// never to word, emoji or link totals, and a sender whose messages are all in
// that partition gets no row.
func MemberStats(records []features.Record) []MemberStat {
	type acc struct {
		stat  MemberStat
		texts int
		words int
	}

	var order []string
	byMember := make(map[string]*acc)
	for _, r := range records {
		if !r.Features.HasText {
			continue
		}
		a, ok := byMember[r.Sender]
		if !ok {
			a = &acc{stat: MemberStat{Member: r.Sender}}
			byMember[r.Sender] = a
			order = append(order, r.Sender)
		}
		a.texts++
		a.words += r.Features.WordCount
		a.stat.Emojis += len(r.Features.Emojis)
		a.stat.Links += r.Features.URLCount
		a.stat.Tiktoks += r.Features.LinkCount
	}

	for _, r := range records {
		if r.Features.HasText {
			continue
		}
		if a, ok := byMember[r.Sender]; ok {
			a.stat.Media++
		}
	}

	out := make([]MemberStat, 0, len(order))
	for _, member := range order {
		a := byMember[member]
		a.stat.Messages = a.texts + a.stat.Media
		a.stat.WordsPerMessage = average(a.words, a.texts)
		out = append(out, a.stat)
	}
	return out
}

// average returns sum/n, or zero when n is zero.
func average(sum, n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}
