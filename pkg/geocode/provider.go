// Package geocode provides geocoding providers that turn an address or IP
// literal into normalized Location records.
package geocode

import "context"

// Provider represents a single geocoding backend.
type Provider interface {
	// Name returns the stable identifier of the provider.
	Name() string

	// Geocode resolves a free-form address or IP literal. A successful call
	// returns at most one Location per upstream record.
	Geocode(ctx context.Context, query string) ([]Location, error)

	// Reverse resolves coordinates back into locations.
	Reverse(ctx context.Context, lat, lng float64) ([]Location, error)
}
