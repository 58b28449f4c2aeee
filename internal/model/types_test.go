package model

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonSet_DedupsByID(t *testing.T) {
	id := uuid.New()
	set := NewPersonSet(
		Person{ID: id, Name: "Ann"},
		Person{ID: id, Name: "Ann Smith"},
	)

	assert.Len(t, set, 1)
	assert.Equal(t, "Ann Smith", set[id].Name)
}

func TestPersonSet_Names(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	set := NewPersonSet(
		Person{ID: a, Name: "Ann"},
		Person{ID: b, Name: "Bob"},
	)

	assert.Equal(t, []string{"Ann", "Bob"}, set.Names())
}

func TestFilm_AddCrew_UnknownRoleIgnored(t *testing.T) {
	f := NewFilm(uuid.New(), "The Star")
	f.AddCrew(Role("producer"), Person{ID: uuid.New(), Name: "Nobody"})

	assert.Empty(t, f.Actors)
	assert.Empty(t, f.Directors)
	assert.Empty(t, f.Writers)
}

func TestFilm_RolesFor(t *testing.T) {
	f := NewFilm(uuid.New(), "The Star")
	personID := uuid.New()
	f.AddCrew(RoleActor, Person{ID: personID, Name: "Ann"})
	f.AddCrew(RoleWriter, Person{ID: personID, Name: "Ann"})

	assert.Equal(t, []Role{RoleActor, RoleWriter}, f.RolesFor(personID))
	assert.Empty(t, f.RolesFor(uuid.New()))
}

func TestFilm_JSONRoundTrip(t *testing.T) {
	rating := 8.5
	f := NewFilm(uuid.New(), "The Star")
	f.Description = "a film"
	f.IMDBRating = &rating

	genreID := uuid.New()
	f.AddGenre(Genre{ID: genreID, Name: "Drama"})

	personA := uuid.New()
	personB := uuid.New()
	f.AddCrew(RoleActor, Person{ID: personA, Name: "Ann"})
	f.AddCrew(RoleWriter, Person{ID: personB, Name: "Howard"})

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded Film
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, *f, decoded)
}

func TestFilm_JSONRoundTrip_EmptySets(t *testing.T) {
	f := NewFilm(uuid.New(), "Untitled")

	data, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded Film
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, *f, decoded)
}

func TestRole_Valid(t *testing.T) {
	assert.True(t, RoleActor.Valid())
	assert.True(t, RoleDirector.Valid())
	assert.True(t, RoleWriter.Valid())
	assert.False(t, Role("producer").Valid())
}

func TestStringSet_SortedOutput(t *testing.T) {
	s := NewStringSet("Zebra", "Ann")
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `["Ann","Zebra"]`, string(data))
}
