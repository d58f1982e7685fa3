package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// splitOnPeriods is a predictable segmenter for ranking tests
func splitOnPeriods(text string) []string {
	var out []string
	for _, part := range strings.SplitAfter(text, ".") {
		if strings.TrimSpace(part) != "" {
			out = append(out, part)
		}
	}
	return out
}

func newTestSummarizer() *Summarizer {
	return NewWithSegmenter(SegmenterFunc(splitOnPeriods))
}

func TestDigest_ExcludesShortSentences(t *testing.T) {
	s := newTestSummarizer()

	got := s.Digest("Hi. This is a test sentence with many words here.", 3)

	assert.Equal(t, "This is a test sentence with many words here.", got)
	assert.NotContains(t, got, "Hi.")
}

func TestDigest_FiveTokensIsTrivial(t *testing.T) {
	s := newTestSummarizer()

	got := s.Digest("one two three four five. one two three four five six.", 3)

	assert.Equal(t, "one two three four five six.", got)
}

func TestDigest_OrdersByLengthNotPosition(t *testing.T) {
	s := newTestSummarizer()
	text := "The first sentence is fairly short overall. " +
		"The second sentence is noticeably longer than the first one was. " +
		"The third sentence is the longest of them all by a comfortable margin indeed."

	got := s.Digest(text, 2)

	assert.Equal(t,
		"The third sentence is the longest of them all by a comfortable margin indeed. "+
			"The second sentence is noticeably longer than the first one was.",
		got)
}

func TestDigest_StableOnTies(t *testing.T) {
	s := newTestSummarizer()
	text := "aaaa bbbb cccc dddd eeee ffff. gggg hhhh iiii jjjj kkkk llll."

	got := s.Digest(text, 2)

	assert.Equal(t, "aaaa bbbb cccc dddd eeee ffff. gggg hhhh iiii jjjj kkkk llll.", got)
}

func TestDigest_FewerThanK(t *testing.T) {
	s := newTestSummarizer()
	text := "Only this sentence has enough words to count. Too short. Nope."

	got := s.Digest(text, 3)

	assert.Equal(t, "Only this sentence has enough words to count.", got)
}

func TestDigest_NonPositiveKUsesDefault(t *testing.T) {
	s := newTestSummarizer()
	text := "one a b c d e f. two a b c d e f g. three a b c d e f g h. four a b c d e f g h i."

	for _, k := range []int{0, -1} {
		got := s.Digest(text, k)
		assert.Equal(t, DefaultSize, len(splitOnPeriods(got)), "k=%d", k)
	}
}

func TestDigest_EmptyText(t *testing.T) {
	s := newTestSummarizer()

	assert.Equal(t, "", s.Digest("", 3))
	assert.Equal(t, "", s.Digest("Short. Very short. Tiny.", 3))
}

func TestDigest_Idempotent(t *testing.T) {
	s := newTestSummarizer()
	text := "The quick brown fox jumps over the lazy dog. " +
		"A second sentence follows with a handful of extra words. Hi."

	first := s.Digest(text, 3)
	second := s.Digest(first, 3)

	assert.Equal(t, first, second)
}

func TestSentences_Classification(t *testing.T) {
	s := newTestSummarizer()

	got := s.Sentences("Hi.  This is a test sentence with many words here.")

	require.Len(t, got, 2)
	assert.Equal(t, Sentence{Text: "Hi.", Tokens: 1, Trivial: true}, got[0])
	assert.Equal(t, "This is a test sentence with many words here.", got[1].Text)
	assert.Equal(t, 9, got[1].Tokens)
	assert.False(t, got[1].Trivial)
}

func TestSentences_StopWordMatchesWholeSentenceOnly(t *testing.T) {
	seg := SegmenterFunc(func(string) []string {
		return []string{"The", "the quick brown fox jumps over everything"}
	})
	s := NewWithSegmenter(seg)

	got := s.Sentences("ignored")

	require.Len(t, got, 2)
	assert.True(t, got[0].Trivial)
	assert.False(t, got[1].Trivial)
}

func TestDigest_PunktSegmenter(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	text := "Hi. Dr. Smith went to Washington to meet the committee members on Tuesday. " +
		"It rained."

	got := s.Digest(text, 3)

	assert.Contains(t, got, "Smith went to Washington")
	assert.NotContains(t, got, "Hi.")
	assert.NotContains(t, got, "It rained.")
}
