package features

import (
	"strings"
	"sync"

	"github.com/kyokomi/emoji/v2"
	"github.com/rivo/uniseg"
)

const variationSelector = "\ufe0f"

// EmojiSet is a read-only membership set of emoji sequences.
type EmojiSet struct {
	m map[string]struct{}
}

var defaultEmojiSet = sync.OnceValue(func() EmojiSet {
	rev := emoji.RevCodeMap()
	seqs := make([]string, 0, len(rev)*2)
	for seq := range rev {
		seqs = append(seqs, seq)
		// exports often drop the variation selector ("❤" instead of "❤️")
		if bare := strings.ReplaceAll(seq, variationSelector, ""); bare != "" && bare != seq {
			seqs = append(seqs, bare)
		}
	}
	return NewEmojiSet(seqs...)
})

// DefaultEmojiSet returns the set of every emoji known to the emoji code map,
// including skin tone, flag and ZWJ sequences.
func DefaultEmojiSet() EmojiSet {
	return defaultEmojiSet()
}

// NewEmojiSet builds a set from explicit sequences.
func NewEmojiSet(seqs ...string) EmojiSet {
	m := make(map[string]struct{}, len(seqs))
	for _, s := range seqs {
		m[s] = struct{}{}
	}
	return EmojiSet{m: m}
}

func (s EmojiSet) Contains(seq string) bool {
	_, ok := s.m[seq]
	return ok
}

func (s EmojiSet) Len() int {
	return len(s.m)
}

// Emojis returns, in order of appearance, every grapheme cluster of text
// that is an emoji. Multi-codepoint sequences count once.
func (s EmojiSet) Emojis(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		if c := g.Str(); s.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}
