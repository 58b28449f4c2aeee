// Package api implements the HTTP Surface (C11): chi-routed handlers for
// the Film, Genre, and Person services, request validation, and the flat
// JSON response projections named by spec.md §6.
package api
