package stats

import (
	"sort"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
)

type EmojiCount struct {
	Emoji string `json:"Emoji"`
	Count int    `json:"Cantidad"`
}

// EmojiFrequency counts every emoji occurrence across all records, most used
// first. Emojis with the same count keep the order in which they first
// appeared in the chat.
func EmojiFrequency(records []features.Record) []EmojiCount {
	index := make(map[string]int)
	var out []EmojiCount
	for _, r := range records {
		for _, e := range r.Features.Emojis {
			i, ok := index[e]
			if !ok {
				i = len(out)
				index[e] = i
				out = append(out, EmojiCount{Emoji: e})
			}
			out[i].Count++
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
