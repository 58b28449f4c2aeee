// Package service implements the Film, Genre, and Person services
// (C8-C10): read-through cache policy over the Search Port, and the
// query composition rules for listing, filtering, and searching films.
package service
