package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type searchDoc struct {
	title string
	tags  []string
}

func docFields(d searchDoc) []string {
	return append([]string{d.title}, d.tags...)
}

func TestFullTextSearch_AndSemantics(t *testing.T) {
	docs := []searchDoc{
		{title: "software engineer", tags: []string{"remote"}},
		{title: "software engineer", tags: []string{"onsite"}},
	}

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "all terms present", query: "engineer remote", want: 1},
		{name: "one term missing", query: "engineer hybrid", want: 0},
		{name: "single term matches both", query: "engineer", want: 2},
		{name: "term from array field", query: "onsite", want: 1},
		{name: "case insensitive", query: "ENGINEER Remote", want: 1},
		{name: "whitespace trimmed", query: "  engineer  ", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FullTextSearch(docs, tt.query, docFields)
			assert.Len(t, got, tt.want)
		})
	}
}

// The empty query is the identity operation, and any query only narrows.
func TestFullTextSearch_EmptyQueryIdentity(t *testing.T) {
	docs := []searchDoc{
		{title: "backend developer"},
		{title: "frontend developer"},
		{title: "product designer"},
	}

	identity := FullTextSearch(docs, "", docFields)
	assert.Equal(t, docs, identity)

	for _, query := range []string{"developer", "designer", "rust", "back front"} {
		got := FullTextSearch(docs, query, docFields)
		assert.LessOrEqual(t, len(got), len(docs), "query %q must narrow", query)
	}
}

func TestFullTextSearch_SubstringMatch(t *testing.T) {
	docs := []searchDoc{{title: "golang developer"}}

	// Terms match as substrings, not whole words.
	got := FullTextSearch(docs, "go dev", docFields)
	assert.Len(t, got, 1)
}
