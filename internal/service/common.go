package service

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker/v2"

	"github.com/kinoflow/kinoflow/internal/backoff"
)

// errNotFound builds the sentinel wrapped by apierr.NotFound when a
// get_by_id misses, shared by the Film, Genre, and Person services.
func errNotFound(id string) error {
	return fmt.Errorf("no document with id %q", id)
}

// docResult is the (body, found) shape of a search_by_id call, boxed up
// so a single get_by_id circuit breaker can front it (gobreaker.Execute
// only carries one result value alongside the error).
type docResult struct {
	body  []byte
	found bool
}

// newGetBreaker and newListBreaker build the pair of circuit breakers
// each read service fronts its searchport.Port calls with: one for the
// single-document get_by_id shape, one for every multi-document
// list/search shape. A persistently failing search backend trips the
// breaker open instead of every request blocking on the backend's own
// timeout (spec.md §7, KindBackendUnavailable).
func newGetBreaker(name string) *gobreaker.CircuitBreaker[docResult] {
	return backoff.NewCircuitBreaker[docResult](backoff.CircuitBreakerConfig{Name: name})
}

func newListBreaker(name string) *gobreaker.CircuitBreaker[[][]byte] {
	return backoff.NewCircuitBreaker[[][]byte](backoff.CircuitBreakerConfig{Name: name})
}

// breakGet runs a search_by_id call through cb, unboxing the result.
func breakGet(ctx context.Context, cb *gobreaker.CircuitBreaker[docResult], name string, fn func(context.Context) ([]byte, bool, error)) ([]byte, bool, error) {
	result, err := backoff.ExecuteWithBreaker(ctx, cb, name, func(ctx context.Context) (docResult, error) {
		body, found, err := fn(ctx)
		return docResult{body: body, found: found}, err
	})
	return result.body, result.found, err
}
