// Package digest builds a short extractive digest of a text: the longest
// non-trivial sentences, ranked by length rather than kept in document order.
package digest

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// DefaultSize is the number of sentences kept when no size is given
const DefaultSize = 3

// minTokens is the largest token count still considered trivial
const minTokens = 5

// Sentence is one segmented sentence with its derived attributes
type Sentence struct {
	Text    string
	Tokens  int
	Trivial bool
}

// Segmenter splits text into sentences
type Segmenter interface {
	Segment(text string) []string
}

// SegmenterFunc adapts a function to Segmenter
type SegmenterFunc func(text string) []string

// Segment calls f(text)
func (f SegmenterFunc) Segment(text string) []string { return f(text) }

// punktSegmenter uses the pretrained English Punkt model
type punktSegmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

func (p *punktSegmenter) Segment(text string) []string {
	tokens := p.tokenizer.Tokenize(text)
	out := make([]string, 0, len(tokens))
	for _, s := range tokens {
		out = append(out, s.Text)
	}
	return out
}

// NewPunktSegmenter loads the English sentence boundary model
func NewPunktSegmenter() (Segmenter, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load English sentence tokenizer: %w", err)
	}
	return &punktSegmenter{tokenizer: tokenizer}, nil
}

// Summarizer produces digests; it holds no per-call state
type Summarizer struct {
	segmenter Segmenter
	stopWords map[string]struct{}
}

// New returns a Summarizer using the English Punkt segmenter
func New() (*Summarizer, error) {
	segmenter, err := NewPunktSegmenter()
	if err != nil {
		return nil, err
	}
	return NewWithSegmenter(segmenter), nil
}

// NewWithSegmenter returns a Summarizer using segmenter
func NewWithSegmenter(segmenter Segmenter) *Summarizer {
	return &Summarizer{segmenter: segmenter, stopWords: englishStopWords}
}

// Sentences segments text and classifies every sentence.
//
// A sentence is trivial when it has at most five whitespace tokens, or when its
// lowercased raw text equals a stop word. Stop words are single tokens, so the
// second test effectively never matches a real sentence; it is kept as is.
func (s *Summarizer) Sentences(text string) []Sentence {
	raw := s.segmenter.Segment(text)
	out := make([]Sentence, 0, len(raw))
	for _, r := range raw {
		tokens := len(strings.Fields(r))
		_, isStopWord := s.stopWords[strings.ToLower(r)]
		out = append(out, Sentence{
			Text:    strings.TrimSpace(r),
			Tokens:  tokens,
			Trivial: tokens <= minTokens || isStopWord,
		})
	}
	return out
}

// Digest returns up to k non-trivial sentences, longest first, joined by single
// spaces. Equal lengths keep their original relative order. k <= 0 means
// DefaultSize. A text without qualifying sentences yields "".
func (s *Summarizer) Digest(text string, k int) string {
	if k <= 0 {
		k = DefaultSize
	}

	var kept []string
	for _, sentence := range s.Sentences(text) {
		if !sentence.Trivial {
			kept = append(kept, sentence.Text)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return utf8.RuneCountInString(kept[i]) > utf8.RuneCountInString(kept[j])
	})

	if len(kept) > k {
		kept = kept[:k]
	}
	return strings.Join(kept, " ")
}
