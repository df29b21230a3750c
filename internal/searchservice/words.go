package searchservice

import (
	"regexp"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// wordRegex anchors the word at boundaries so "cat" does not match "catalog".
// Matching is case-insensitive.
func wordRegex(word string) primitive.Regex {
	return primitive.Regex{
		Pattern: `(^|$|\W)` + regexp.QuoteMeta(word) + `($|^|\W)`,
		Options: "i",
	}
}

// filterWords drops words shorter than minLen runes.
func filterWords(words []string, minLen int) []string {
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) >= minLen {
			kept = append(kept, w)
		}
	}
	return kept
}

// wordsFilter builds the word-match predicate: every word must match at least
// one of the fields. AND across words, OR across fields.
func wordsFilter(words []string, fields ...string) bson.M {
	and := make([]bson.M, 0, len(words))
	for _, w := range words {
		re := wordRegex(w)
		or := make([]bson.M, 0, len(fields))
		for _, f := range fields {
			or = append(or, bson.M{f: re})
		}
		and = append(and, bson.M{"$or": or})
	}
	return bson.M{"$and": and}
}
