package service

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/sony/gobreaker/v2"

	"github.com/kinoflow/kinoflow/internal/apierr"
	"github.com/kinoflow/kinoflow/internal/backoff"
	"github.com/kinoflow/kinoflow/internal/cacheport"
	"github.com/kinoflow/kinoflow/internal/model"
	"github.com/kinoflow/kinoflow/internal/searchport"
)

// PersonService implements C10: get_by_id and search_by_name, the
// latter via search_by_field on "name" (spec.md §4.10). The HTTP layer
// composes this with C8's GetFilmsWithPerson to build the public person
// response; PersonService itself knows nothing about films.
type PersonService struct {
	search      searchport.Port
	cache       cacheport.Port
	getBreaker  *gobreaker.CircuitBreaker[docResult]
	listBreaker *gobreaker.CircuitBreaker[[][]byte]
}

// NewPersonService builds a PersonService over search and cache.
func NewPersonService(search searchport.Port, cache cacheport.Port) *PersonService {
	return &PersonService{
		search:      search,
		cache:       cache,
		getBreaker:  newGetBreaker("person_service.get"),
		listBreaker: newListBreaker("person_service.list"),
	}
}

// GetByID returns the person with id, or a KindNotFound error if absent.
func (s *PersonService) GetByID(ctx context.Context, id string) (*model.Person, error) {
	key := cacheport.PersonKey(id)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var person model.Person
		if err := json.Unmarshal(raw, &person); err == nil {
			return &person, nil
		}
	}

	body, found, err := breakGet(ctx, s.getBreaker, "person_service.get_by_id", func(ctx context.Context) ([]byte, bool, error) {
		return s.search.Get(ctx, searchport.ResourcePersons, id)
	})
	if err != nil {
		return nil, apierr.BackendUnavailable("person_service.get_by_id", err)
	}
	if !found {
		return nil, apierr.NotFound("person_service.get_by_id", errNotFound(id))
	}

	var person model.Person
	if err := json.Unmarshal(body, &person); err != nil {
		return nil, apierr.BackendUnavailable("person_service.get_by_id", err)
	}

	s.cache.Set(ctx, key, body, itemTTL)
	return &person, nil
}

// SearchByName searches persons whose name matches query, via
// search_by_field on "name".
func (s *PersonService) SearchByName(ctx context.Context, name string, pageSize, pageNumber int) ([]*model.Person, error) {
	key := cacheport.PersonsSearchKey(name, pageSize, pageNumber)

	if raw, ok := s.cache.Get(ctx, key); ok {
		var persons []*model.Person
		if err := json.Unmarshal(raw, &persons); err == nil {
			return persons, nil
		}
	}

	docs, err := backoff.ExecuteWithBreaker(ctx, s.listBreaker, "person_service.search_by_name", func(ctx context.Context) ([][]byte, error) {
		return s.search.SearchByField(ctx, searchport.ResourcePersons, "name", name, pageSize, pageNumber, "")
	})
	if err != nil {
		return nil, apierr.BackendUnavailable("person_service.search_by_name", err)
	}

	persons := make([]*model.Person, 0, len(docs))
	for _, doc := range docs {
		var person model.Person
		if err := json.Unmarshal(doc, &person); err != nil {
			return nil, apierr.BackendUnavailable("person_service.search_by_name", err)
		}
		persons = append(persons, &person)
	}

	if raw, err := json.Marshal(persons); err == nil {
		s.cache.Set(ctx, key, raw, listTTL)
	}

	return persons, nil
}
