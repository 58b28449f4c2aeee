package searchport

import "embed"

// mappingFiles embeds the externally authored index mapping blobs
// (spec.md §6: "externally authored JSON blobs ... passed to
// create_index verbatim"). The repo does not generate or validate their
// schema; it only ships and loads them.
//
//go:embed mappings/*.json
var mappingFiles embed.FS

// Resource names match the index names used throughout the cache key
// schema and the HTTP surface.
const (
	ResourceMovies  = "movies"
	ResourceGenres  = "genres"
	ResourcePersons = "persons"
)

// Mapping returns the embedded mapping JSON for a resource name.
func Mapping(resource string) ([]byte, error) {
	return mappingFiles.ReadFile("mappings/" + resource + ".json")
}

// AllResources lists every resource this repo ships a mapping for, in
// the order ensure_indices should create them.
var AllResources = []string{ResourceMovies, ResourceGenres, ResourcePersons}
