package cacheport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilmsListKey_NoGenreUsesNoneSentinel(t *testing.T) {
	assert.Equal(t, "films:list:-imdb_rating:None:20:1", FilmsListKey("-imdb_rating", "", 20, 1))
}

func TestFilmsListKey_WithGenre(t *testing.T) {
	assert.Equal(t, "films:list:imdb_rating:abc:20:1", FilmsListKey("imdb_rating", "abc", 20, 1))
}

func TestFilmKey(t *testing.T) {
	assert.Equal(t, "film:abc-123", FilmKey("abc-123"))
}

func TestPersonFilmsKey(t *testing.T) {
	assert.Equal(t, "person:abc-123:roles", PersonFilmsKey("abc-123"))
}

func TestGenresListKey(t *testing.T) {
	assert.Equal(t, "genres:list:40:2", GenresListKey(40, 2))
}
