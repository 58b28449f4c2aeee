package api

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/kinoflow/kinoflow/internal/apierr"
)

var validate = validator.New()

// pageParams is the uniform pagination query-parameter contract, validated
// per spec.md §4.11: page_size in [1,100], page_number >= 1.
type pageParams struct {
	PageSize   int `validate:"min=1,max=100"`
	PageNumber int `validate:"min=1"`
}

const (
	defaultPageSize   = 20
	defaultPageNumber = 1
)

// parsePageParams reads page_size/page_number from q, applying defaults
// when absent, and validates the result.
func parsePageParams(q url.Values) (pageParams, error) {
	p := pageParams{PageSize: defaultPageSize, PageNumber: defaultPageNumber}

	if raw := q.Get("page_size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, apierr.Validation("validate.page_params", err)
		}
		p.PageSize = n
	}
	if raw := q.Get("page_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, apierr.Validation("validate.page_params", err)
		}
		p.PageNumber = n
	}

	if err := validate.Struct(p); err != nil {
		return p, apierr.Validation("validate.page_params", err)
	}
	return p, nil
}

// sortParams validates a sort query parameter per spec.md §4.11: either
// "imdb_rating", "-imdb_rating", or absent (empty defers to the service's
// own default).
type sortParams struct {
	Sort string `validate:"omitempty,oneof=imdb_rating -imdb_rating"`
}

func parseSort(q url.Values) (string, error) {
	s := sortParams{Sort: q.Get("sort")}
	if err := validate.Struct(s); err != nil {
		return "", apierr.Validation("validate.sort", err)
	}
	return s.Sort, nil
}

// searchQueryParams validates the free-text search query parameter,
// required with length >= 1 per spec.md §4.11.
type searchQueryParams struct {
	Query string `validate:"required,min=1"`
}

func parseSearchQuery(q url.Values) (string, error) {
	s := searchQueryParams{Query: q.Get("query")}
	if err := validate.Struct(s); err != nil {
		return "", apierr.Validation("validate.query", err)
	}
	return s.Query, nil
}

// genreFilter returns the optional genre query parameter for list_films.
func genreFilter(q url.Values) string {
	return q.Get("genre")
}

func queryOf(r *http.Request) url.Values {
	return r.URL.Query()
}

// parseUUID parses a path-parameter id into a uuid.UUID.
func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}
