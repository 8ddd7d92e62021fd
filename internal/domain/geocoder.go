package domain

import "context"

// Geocoder resolves a partial place name into suggestions.
type Geocoder interface {
	// Geocode returns up to a provider-limited number of places matching
	// the query. An empty slice means the provider found nothing.
	Geocode(ctx context.Context, query string) ([]Place, error)
}
