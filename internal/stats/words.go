package stats

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/EfrainPS/chats-whatsapp-analyzer/internal/features"
)

// WordCorpus lowercases every text message and joins their whitespace
// separated tokens with single spaces. Media and empty bodies contribute
// nothing. Stopwords are left in; filtering belongs to the consumer.
func WordCorpus(records []features.Record) string {
	var b strings.Builder
	for _, r := range records {
		if !r.Features.HasText {
			continue
		}
		for _, tok := range strings.Fields(strings.ToLower(r.Body)) {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(tok)
		}
	}
	return b.String()
}

// Stoplist is an immutable set of lowercase tokens excluded from word
// frequencies.
type Stoplist struct {
	words map[string]struct{}
}

func NewStoplist(words ...string) Stoplist {
	s := Stoplist{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			s.words[w] = struct{}{}
		}
	}
	return s
}

// With returns a new stoplist holding s plus words. s is not modified.
func (s Stoplist) With(words ...string) Stoplist {
	all := make([]string, 0, len(s.words)+len(words))
	for w := range s.words {
		all = append(all, w)
	}
	return NewStoplist(append(all, words...)...)
}

func (s Stoplist) Contains(word string) bool {
	_, ok := s.words[strings.ToLower(word)]
	return ok
}

func (s Stoplist) Len() int {
	return len(s.words)
}

// DefaultStoplist is the generic English word-cloud list plus Spanish
// function words and export leftovers.
func DefaultStoplist() Stoplist {
	return NewStoplist(append(englishStopwords, spanishStopwords...)...)
}

var spanishStopwords = []string{
	"que", "qué", "con", "de", "te", "en", "la", "lo", "le", "el", "las", "los", "les", "por", "es",
	"son", "se", "para", "un", "una", "chicos", "su", "si", "chic", "nos", "ya", "hay", "esta",
	"pero", "del", "mas", "más", "eso", "este", "como", "así", "todo", "https", "media", "omitted",
	"y", "mi", "o", "q", "yo", "al", "multimedia", "omitido",
}

var englishStopwords = []string{
	"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and", "any",
	"are", "aren't", "as", "at", "be", "because", "been", "before", "being", "below", "between",
	"both", "but", "by", "can", "can't", "cannot", "com", "could", "couldn't", "did", "didn't",
	"do", "does", "doesn't", "doing", "don't", "down", "during", "each", "else", "ever", "few",
	"for", "from", "further", "get", "had", "hadn't", "has", "hasn't", "have", "haven't", "having",
	"he", "he'd", "he'll", "he's", "hence", "her", "here", "here's", "hers", "herself", "him",
	"himself", "his", "how", "how's", "however", "http", "i", "i'd", "i'll", "i'm", "i've", "if",
	"in", "into", "is", "isn't", "it", "it's", "its", "itself", "just", "k", "let's", "like", "me",
	"more", "most", "mustn't", "my", "myself", "no", "nor", "not", "of", "off", "on", "once",
	"only", "or", "other", "otherwise", "ought", "our", "ours", "ourselves", "out", "over", "own",
	"r", "same", "shall", "shan't", "she", "she'd", "she'll", "she's", "should", "shouldn't",
	"since", "so", "some", "such", "than", "that", "that's", "the", "their", "theirs", "them",
	"themselves", "then", "there", "there's", "therefore", "these", "they", "they'd", "they'll",
	"they're", "they've", "this", "those", "through", "to", "too", "under", "until", "up", "very",
	"was", "wasn't", "we", "we'd", "we'll", "we're", "we've", "were", "weren't", "what", "what's",
	"when", "when's", "where", "where's", "which", "while", "who", "who's", "whom", "why", "why's",
	"with", "won't", "would", "wouldn't", "www", "you", "you'd", "you'll", "you're", "you've",
	"your", "yours", "yourself", "yourselves",
}

type WordCount struct {
	Word  string `json:"Palabra"`
	Count int    `json:"Cantidad"`
}

// WordFrequency tokenizes a corpus the way a word cloud does: surrounding
// punctuation is trimmed, single-character tokens and stopwords are skipped.
// Results are sorted by count, ties in order of first appearance, and cut
// to limit when limit > 0.
func WordFrequency(corpus string, stop Stoplist, limit int) []WordCount {
	index := make(map[string]int)
	var out []WordCount
	for _, tok := range strings.Fields(corpus) {
		w := strings.TrimFunc(tok, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if utf8.RuneCountInString(w) < 2 || stop.Contains(w) {
			continue
		}
		i, ok := index[w]
		if !ok {
			i = len(out)
			index[w] = i
			out = append(out, WordCount{Word: w})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
