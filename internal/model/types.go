package model

import (
	"sort"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Role is the closed enum of crew roles a Person may hold in a Film.
type Role string

const (
	RoleActor    Role = "actor"
	RoleDirector Role = "director"
	RoleWriter   Role = "writer"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleActor, RoleDirector, RoleWriter:
		return true
	default:
		return false
	}
}

// Person is value-equal and hashed on ID alone, so two observations of the
// same person with differently-spelled names still collapse to one set
// member.
type Person struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Genre is value-equal on ID. Description is absent at the per-film join
// level (the producer's hydration query does not carry it there) but is
// present on genre documents fetched directly from the genres index.
type Genre struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

// PersonSet is a set of Person keyed by ID. Using the ID as the map key
// is what gives it id-only equality/hash semantics: adding two Persons
// with the same ID and different Name keeps only one.
type PersonSet map[uuid.UUID]Person

// NewPersonSet builds a PersonSet from zero or more persons.
func NewPersonSet(people ...Person) PersonSet {
	s := make(PersonSet, len(people))
	for _, p := range people {
		s.Add(p)
	}
	return s
}

// Add inserts or overwrites a person by ID.
func (s PersonSet) Add(p Person) {
	s[p.ID] = p
}

// Names returns the sorted, deduplicated set of member names, matching
// the derived `_names` text fields used for relevance scoring.
func (s PersonSet) Names() []string {
	names := make(map[string]struct{}, len(s))
	for _, p := range s {
		names[p.Name] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a JSON array sorted by ID for
// deterministic output.
func (s PersonSet) MarshalJSON() ([]byte, error) {
	list := make([]Person, 0, len(s))
	for _, p := range s {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID.String() < list[j].ID.String() })
	return json.Marshal(list)
}

// UnmarshalJSON decodes a JSON array of persons into the set, applying
// ID-keyed dedup.
func (s *PersonSet) UnmarshalJSON(data []byte) error {
	var list []Person
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	set := make(PersonSet, len(list))
	for _, p := range list {
		set.Add(p)
	}
	*s = set
	return nil
}

// GenreSet is a set of Genre keyed by ID.
type GenreSet map[uuid.UUID]Genre

// NewGenreSet builds a GenreSet from zero or more genres.
func NewGenreSet(genres ...Genre) GenreSet {
	s := make(GenreSet, len(genres))
	for _, g := range genres {
		s.Add(g)
	}
	return s
}

// Add inserts or overwrites a genre by ID.
func (s GenreSet) Add(g Genre) {
	s[g.ID] = g
}

// Names returns the sorted, deduplicated set of member names.
func (s GenreSet) Names() []string {
	names := make(map[string]struct{}, len(s))
	for _, g := range s {
		names[g.Name] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a JSON array sorted by ID.
func (s GenreSet) MarshalJSON() ([]byte, error) {
	list := make([]Genre, 0, len(s))
	for _, g := range s {
		list = append(list, g)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID.String() < list[j].ID.String() })
	return json.Marshal(list)
}

// UnmarshalJSON decodes a JSON array of genres into the set.
func (s *GenreSet) UnmarshalJSON(data []byte) error {
	var list []Genre
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	set := make(GenreSet, len(list))
	for _, g := range list {
		set.Add(g)
	}
	*s = set
	return nil
}

// StringSet is a set of strings, used for the derived `_names` fields.
type StringSet map[string]struct{}

// NewStringSet builds a StringSet from zero or more strings.
func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, i := range items {
		s.Add(i)
	}
	return s
}

// Add inserts a string into the set.
func (s StringSet) Add(item string) {
	s[item] = struct{}{}
}

// Slice returns the set's members sorted for deterministic output.
func (s StringSet) Slice() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// MarshalJSON encodes the set as a sorted JSON array.
func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Slice())
}

// UnmarshalJSON decodes a JSON array of strings into the set.
func (s *StringSet) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = NewStringSet(list...)
	return nil
}

// Film is the denormalized document indexed under the "movies" resource.
// All crew and genre membership is embedded by value; there are no
// in-memory back-pointers from Film to Person or Genre (cross-entity
// lookups go through the search backend).
type Film struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	IMDBRating     *float64  `json:"imdb_rating,omitempty"`
	Genres         GenreSet  `json:"genres"`
	GenresNames    StringSet `json:"genres_names"`
	Actors         PersonSet `json:"actors"`
	ActorsNames    StringSet `json:"actors_names"`
	Directors      PersonSet `json:"directors"`
	DirectorsNames StringSet `json:"directors_names"`
	Writers        PersonSet `json:"writers"`
	WritersNames   StringSet `json:"writers_names"`
}

// NewFilm returns a Film with every set-valued field initialized empty,
// ready for the row-merge algorithm (C5.1) to populate incrementally.
func NewFilm(id uuid.UUID, title string) *Film {
	return &Film{
		ID:             id,
		Title:          title,
		Genres:         GenreSet{},
		GenresNames:    StringSet{},
		Actors:         PersonSet{},
		ActorsNames:    StringSet{},
		Directors:      PersonSet{},
		DirectorsNames: StringSet{},
		Writers:        PersonSet{},
		WritersNames:   StringSet{},
	}
}

// AddGenre merges a genre into the document's genres set and derived names.
func (f *Film) AddGenre(g Genre) {
	f.Genres.Add(g)
	f.GenresNames.Add(g.Name)
}

// AddCrew merges a person into the role-keyed set and its parallel
// `_names` set. Unknown roles are ignored silently, matching the
// row-merge algorithm's documented behavior.
func (f *Film) AddCrew(role Role, p Person) {
	switch role {
	case RoleActor:
		f.Actors.Add(p)
		f.ActorsNames.Add(p.Name)
	case RoleDirector:
		f.Directors.Add(p)
		f.DirectorsNames.Add(p.Name)
	case RoleWriter:
		f.Writers.Add(p)
		f.WritersNames.Add(p.Name)
	}
}

// RolesFor returns the set of roles under which person id appears in
// this film, in the fixed order actor, director, writer.
func (f *Film) RolesFor(id uuid.UUID) []Role {
	var roles []Role
	if _, ok := f.Actors[id]; ok {
		roles = append(roles, RoleActor)
	}
	if _, ok := f.Directors[id]; ok {
		roles = append(roles, RoleDirector)
	}
	if _, ok := f.Writers[id]; ok {
		roles = append(roles, RoleWriter)
	}
	return roles
}
