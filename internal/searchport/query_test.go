package searchport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSort(t *testing.T) {
	field, order := ParseSort("-imdb_rating")
	assert.Equal(t, "imdb_rating", field)
	assert.Equal(t, "desc", order)

	field, order = ParseSort("imdb_rating")
	assert.Equal(t, "imdb_rating", field)
	assert.Equal(t, "asc", order)
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, offset(20, 1))
	assert.Equal(t, 20, offset(20, 2))
	assert.Equal(t, 780, offset(20, 40))
}

func TestTerm_ToDSL(t *testing.T) {
	q := Term{Field: "genres.id", Value: "abc-123"}
	assert.Equal(t, map[string]any{
		"term": map[string]any{"genres.id": "abc-123"},
	}, ToDSL(q))
}

func TestNested_ToDSL(t *testing.T) {
	q := Nested{Path: "genres", Query: Term{Field: "genres.id", Value: "abc-123"}}
	assert.Equal(t, map[string]any{
		"nested": map[string]any{
			"path": "genres",
			"query": map[string]any{
				"term": map[string]any{"genres.id": "abc-123"},
			},
		},
	}, ToDSL(q))
}

func TestBoolShould_ToDSL(t *testing.T) {
	q := BoolShould{Should: []Query{
		Nested{Path: "actors", Query: Term{Field: "actors.id", Value: "p1"}},
		Nested{Path: "writers", Query: Term{Field: "writers.id", Value: "p1"}},
	}}
	dsl := ToDSL(q)
	boolClause, ok := dsl["bool"].(map[string]any)
	assert.True(t, ok)
	should, ok := boolClause["should"].([]map[string]any)
	assert.True(t, ok)
	assert.Len(t, should, 2)
}

func TestMultiMatch_ToDSL(t *testing.T) {
	q := MultiMatch{
		Query:     "the star",
		Fields:    []string{"title^3", "description"},
		Fuzziness: "AUTO",
	}
	assert.Equal(t, map[string]any{
		"multi_match": map[string]any{
			"query":     "the star",
			"fields":    []string{"title^3", "description"},
			"fuzziness": "AUTO",
		},
	}, ToDSL(q))
}

func TestMatchAll_ToDSL(t *testing.T) {
	assert.Equal(t, map[string]any{"match_all": map[string]any{}}, ToDSL(MatchAll{}))
}
