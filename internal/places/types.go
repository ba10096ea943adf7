// Package places queries the places provider for businesses inside a
// bounding circle and post-filters the results to the exact drawn polygon.
package places

import "github.com/lasosearch/lasso/internal/geo"

// EdgeToleranceMeters keeps places sitting just outside the drawn boundary
// (a storefront across the sidewalk from the stroke) in the result set.
const EdgeToleranceMeters = 10.0

// Place is a single business record from the provider.
type Place struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category,omitempty"`
	Address  string    `json:"address,omitempty"`
	Rating   float64   `json:"rating,omitempty"`
	Location geo.Point `json:"location"`

	// DistanceMeters is filled by SortByDistance relative to its
	// reference point; zero otherwise.
	DistanceMeters float64 `json:"distance_m,omitempty"`
}

// SearchOptions narrows a circle search.
type SearchOptions struct {
	Category string `json:"category,omitempty"`
	// Limit caps the total number of places returned across all pages.
	// Zero means provider default.
	Limit int `json:"limit,omitempty"`
}
