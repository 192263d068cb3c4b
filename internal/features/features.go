package features

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/parse"
)

const (
	DefaultMediaSentinel = "<Multimedia omitido>"
	DefaultLinkMarker    = "vm.tiktok.com"
)

var urlPattern = regexp.MustCompile(`https?://\S+`)

type FeatureSet struct {
	Emojis    []string
	URLCount  int
	LinkCount int // occurrences of the platform short-link marker
	WordCount int // zero unless HasText
	CharCount int // zero unless HasText
	Media     bool
	HasText   bool // neither the media sentinel nor empty
}

type Record struct {
	parse.ChatRecord
	Features FeatureSet
}

type Extractor struct {
	MediaSentinel string
	LinkMarker    string
	Emoji         EmojiSet
}

// NewExtractor returns an extractor using the default emoji set. Empty
// arguments fall back to the Spanish-locale defaults.
func NewExtractor(mediaSentinel, linkMarker string) *Extractor {
	if mediaSentinel == "" {
		mediaSentinel = DefaultMediaSentinel
	}
	if linkMarker == "" {
		linkMarker = DefaultLinkMarker
	}
	return &Extractor{
		MediaSentinel: mediaSentinel,
		LinkMarker:    linkMarker,
		Emoji:         DefaultEmojiSet(),
	}
}

// IsMedia reports whether body is the media-omitted placeholder.
func (x *Extractor) IsMedia(body string) bool {
	return body == x.MediaSentinel
}

// HasText reports whether body takes part in word and character statistics.
func (x *Extractor) HasText(body string) bool {
	return body != "" && body != x.MediaSentinel
}

func (x *Extractor) Extract(body string) FeatureSet {
	fs := FeatureSet{
		Emojis:   x.Emoji.Emojis(body),
		URLCount: len(urlPattern.FindAllStringIndex(body, -1)),
		Media:    x.IsMedia(body),
		HasText:  x.HasText(body),
	}
	if x.LinkMarker != "" {
		fs.LinkCount = strings.Count(body, x.LinkMarker)
	}
	if fs.HasText {
		fs.WordCount = len(strings.Fields(body))
		fs.CharCount = utf8.RuneCountInString(body)
	}
	return fs
}

func (x *Extractor) ExtractAll(records []parse.ChatRecord) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = Record{ChatRecord: r, Features: x.Extract(r.Body)}
	}
	return out
}
