// Package model defines the denormalized document types shared by the
// ETL pipeline and the Query API: Person, Genre, Film, and the closed
// Role enum. Set-valued fields (genres, actors, directors, writers) are
// modeled as maps keyed by the member's identity so duplicate
// observations collapse the way the search index's document semantics
// require.
package model
