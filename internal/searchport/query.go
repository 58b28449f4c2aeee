package searchport

// Query is a typed query AST node that renders to the Elasticsearch
// query DSL. Builder structs (not hand-assembled maps) keep C8's query
// composition readable and testable in isolation from the transport.
type Query interface {
	toDSL() map[string]any
}

// MatchAll matches every document, used by C8's list-without-filter path.
type MatchAll struct{}

func (MatchAll) toDSL() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}

// Term matches documents where field equals value exactly.
type Term struct {
	Field string
	Value string
}

func (t Term) toDSL() map[string]any {
	return map[string]any{
		"term": map[string]any{t.Field: value(t.Value)},
	}
}

// value renders strings that look like plain identifiers without extra
// quoting assumptions; kept as a named step so future non-string terms
// (e.g. numeric ids) have a single place to adapt.
func value(v string) any { return v }

// Nested traverses an embedded object array (e.g. "genres", "actors")
// while preserving per-element boundaries, per spec.md's "nested query"
// glossary entry.
type Nested struct {
	Path  string
	Query Query
}

func (n Nested) toDSL() map[string]any {
	return map[string]any{
		"nested": map[string]any{
			"path":  n.Path,
			"query": n.Query.toDSL(),
		},
	}
}

// BoolShould is a boolean OR over its member queries, used by C8's
// get_films_with_person (OR over actors/directors/writers nested terms).
type BoolShould struct {
	Should []Query
}

func (b BoolShould) toDSL() map[string]any {
	clauses := make([]map[string]any, 0, len(b.Should))
	for _, q := range b.Should {
		clauses = append(clauses, q.toDSL())
	}
	return map[string]any{
		"bool": map[string]any{"should": clauses},
	}
}

// MultiMatch runs a full-text query across multiple fields with
// per-field boosts (Fields entries may carry a "^N" boost suffix) and
// fuzzy matching.
type MultiMatch struct {
	Query      string
	Fields     []string
	Fuzziness  string // e.g. "AUTO"; empty disables fuzzy matching
}

func (m MultiMatch) toDSL() map[string]any {
	dsl := map[string]any{
		"query":  m.Query,
		"fields": m.Fields,
	}
	if m.Fuzziness != "" {
		dsl["fuzziness"] = m.Fuzziness
	}
	return map[string]any{"multi_match": dsl}
}

// ToDSL exposes the query's rendered DSL fragment (the value under the
// top-level "query" key of a search request body).
func ToDSL(q Query) map[string]any {
	return q.toDSL()
}
