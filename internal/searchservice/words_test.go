package searchservice

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func matches(t *testing.T, word, text string) bool {
	t.Helper()

	re := wordRegex(word)
	compiled, err := regexp.Compile("(?i)" + re.Pattern)
	assert.NoError(t, err)

	return compiled.MatchString(text)
}

func TestWordRegex(t *testing.T) {
	testCases := []struct {
		name     string
		word     string
		text     string
		expected bool
	}{
		{name: "word boundary blocks prefixes", word: "cat", text: "The CATalog", expected: false},
		{name: "case insensitive whole word", word: "cat", text: "a CAT sat", expected: true},
		{name: "word at start", word: "cat", text: "cat sat", expected: true},
		{name: "word at end", word: "cat", text: "a cat", expected: true},
		{name: "punctuation is a boundary", word: "cat", text: "cat, sat", expected: true},
		{name: "metacharacters are literal", word: "c.t", text: "a cat sat", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, matches(t, tc.word, tc.text))
		})
	}
}

func TestFilterWords(t *testing.T) {
	assert.Equal(t, []string{"ocean"}, filterWords([]string{"a", "the", "ocean"}, 4))
	assert.Empty(t, filterWords([]string{"a", "the"}, 4))
	assert.Equal(t, []string{"écoles"}, filterWords([]string{"écoles"}, 6))
}

func TestWordsFilter(t *testing.T) {
	filter := wordsFilter([]string{"ocean", "life"}, "title", "content")

	and, ok := filter["$and"].([]bson.M)
	assert.True(t, ok)
	assert.Len(t, and, 2)

	for _, clause := range and {
		or, ok := clause["$or"].([]bson.M)
		assert.True(t, ok)
		assert.Len(t, or, 2)
	}
}
