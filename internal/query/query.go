// Package query translates free-text title/location input into the
// store-native search syntax.
package query

import (
	"strings"

	"github.com/paylens/paylens/internal/normalize"
)

// MatchAll is the store query that matches every record.
const MatchAll = "*"

// Translate builds an order-insensitive multi-field match query. Each
// field is a bag-of-words predicate: every supplied word must appear in
// the field, in any order. The title and location predicates are ANDed.
// All words are required; aggregate statistics over a loosely matched
// set would be misleading.
//
// Input text gets the same simplification as indexed text, which also
// strips every character the store query syntax treats specially:
// malformed input degrades to literal terms, never to a syntax error.
// An empty field matches everything; both empty yields MatchAll.
func Translate(title, location string) string {
	var parts []string
	if p := fieldPredicate("job_title", title); p != "" {
		parts = append(parts, p)
	}
	if p := fieldPredicate("city_state", location); p != "" {
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return MatchAll
	}
	return strings.Join(parts, " ")
}

func fieldPredicate(field, text string) string {
	words := strings.Fields(normalize.Simplify(text))
	if len(words) == 0 {
		return ""
	}
	return "@" + field + ":(" + strings.Join(words, " ") + ")"
}
