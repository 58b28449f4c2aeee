package cacheport

import "fmt"

// Key builders for the cache key schema in spec.md §6, grounded on the
// original Python services' _get_*_cache_key methods
// (original_source/services/api/src/services/film.py, person.py).

func FilmKey(id string) string {
	return fmt.Sprintf("film:%s", id)
}

func FilmsListKey(sort, genreID string, pageSize, pageNumber int) string {
	if genreID == "" {
		genreID = "None"
	}
	return fmt.Sprintf("films:list:%s:%s:%d:%d", sort, genreID, pageSize, pageNumber)
}

func FilmSearchKey(query string, pageSize, pageNumber int) string {
	return fmt.Sprintf("film:search:%s:%d:%d", query, pageSize, pageNumber)
}

func PersonFilmsKey(personID string) string {
	return fmt.Sprintf("person:%s:roles", personID)
}

func GenreKey(id string) string {
	return fmt.Sprintf("genre:%s", id)
}

func GenresListKey(pageSize, pageNumber int) string {
	return fmt.Sprintf("genres:list:%d:%d", pageSize, pageNumber)
}

func PersonKey(id string) string {
	return fmt.Sprintf("person:%s", id)
}

func PersonsSearchKey(name string, pageSize, pageNumber int) string {
	return fmt.Sprintf("persons:search:%s:%d:%d", name, pageSize, pageNumber)
}
