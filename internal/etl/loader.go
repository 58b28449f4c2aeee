package etl

import (
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/kinoflow/kinoflow/internal/backoff"
	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/searchport"
)

// Resource names the Loader writes to, matching the embedded mapping names.
const (
	ResourceMovies  = searchport.ResourceMovies
	ResourceGenres  = searchport.ResourceGenres
	ResourcePersons = searchport.ResourcePersons
)

// Loader implements C6: index creation and bulk document writes, with
// retryable failures routed through Backoff per spec.md §4.6.
type Loader struct {
	search searchport.Port
	policy backoff.Policy
}

// NewLoader builds a Loader over search, retrying per policy. Each
// operation overwrites policy.Name with its own per-resource name for
// retry metrics, so a Name set by the caller is not used.
func NewLoader(search searchport.Port, policy backoff.Policy) *Loader {
	return &Loader{search: search, policy: policy}
}

// EnsureIndices creates every index this repo ships a mapping for,
// treating "already exists" as success (spec.md §4.6).
func (l *Loader) EnsureIndices(ctx context.Context) error {
	for _, resource := range searchport.AllResources {
		mapping, err := searchport.Mapping(resource)
		if err != nil {
			return fmt.Errorf("etl: loader: load mapping %s: %w", resource, err)
		}
		policy := l.policy
		policy.Name = "etl.ensure_indices." + resource
		_, err = backoff.Retry(ctx, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, l.search.CreateIndex(ctx, resource, mapping)
		}, policy)
		if err != nil {
			return fmt.Errorf("etl: loader: ensure index %s: %w", resource, err)
		}
	}
	return nil
}

// LoadFilms bulk-upserts films into the movies index, returning the
// count of documents submitted (spec.md §4.6 bulk_load).
func (l *Loader) LoadFilms(ctx context.Context, films []*model.Film) (int, error) {
	docs := make([]searchport.Document, 0, len(films))
	for _, f := range films {
		body, err := json.Marshal(f)
		if err != nil {
			return 0, fmt.Errorf("etl: loader: marshal film %s: %w", f.ID, err)
		}
		docs = append(docs, searchport.Document{ID: f.ID.String(), Body: body})
	}
	return l.bulkLoad(ctx, ResourceMovies, docs)
}

// LoadGenres bulk-upserts genres into the genres index.
func (l *Loader) LoadGenres(ctx context.Context, genres []model.Genre) (int, error) {
	docs := make([]searchport.Document, 0, len(genres))
	for _, g := range genres {
		body, err := json.Marshal(g)
		if err != nil {
			return 0, fmt.Errorf("etl: loader: marshal genre %s: %w", g.ID, err)
		}
		docs = append(docs, searchport.Document{ID: g.ID.String(), Body: body})
	}
	return l.bulkLoad(ctx, ResourceGenres, docs)
}

func (l *Loader) bulkLoad(ctx context.Context, resource string, docs []searchport.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	policy := l.policy
	policy.Name = "etl.bulk_load." + resource
	return backoff.Retry(ctx, func(ctx context.Context) (int, error) {
		return l.search.BulkIndex(ctx, resource, docs)
	}, policy)
}
