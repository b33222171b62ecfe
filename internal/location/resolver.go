// Package location resolves a canonical Location either from device
// coordinates or from a free-text city search against the geocoding API.
package location

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/openweather"
)

// CurrentLocationName is the placeholder name synthesized when resolving
// from raw coordinates.
const CurrentLocationName = "Current Location"

// ErrNotFound is returned when a name query yields zero geocoding candidates.
var ErrNotFound = errors.New("city not found, check the spelling and try again")

// Location is a resolved place. It is immutable once created; a new search or
// locate action replaces it wholesale.
type Location struct {
	Name    string  `json:"name"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Geocoder is the slice of the upstream client the resolver needs.
type Geocoder interface {
	DirectGeocode(ctx context.Context, query string) ([]openweather.GeoCandidate, error)
}

type Resolver struct {
	geocoder Geocoder
	logger   *zap.Logger
}

func NewResolver(geocoder Geocoder, logger *zap.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		logger:   logger,
	}
}

// ResolveByName geocodes a free-text query and deterministically selects the
// first candidate. Callers wanting disambiguation should use Search and pick
// themselves.
func (r *Resolver) ResolveByName(ctx context.Context, query string) (Location, error) {
	candidates, err := r.geocoder.DirectGeocode(ctx, query)
	if err != nil {
		return Location{}, err
	}

	if len(candidates) == 0 {
		r.logger.Info("Geocoding query matched nothing", zap.String("query", query))
		return Location{}, ErrNotFound
	}

	loc := fromCandidate(candidates[0])
	r.logger.Debug("Resolved location by name",
		zap.String("query", query),
		zap.String("name", loc.Name),
		zap.String("country", loc.Country),
		zap.Int("candidates", len(candidates)))

	return loc, nil
}

// Search returns the full geocoding candidate list for a query, capped
// upstream at the configured limit.
func (r *Resolver) Search(ctx context.Context, query string) ([]Location, error) {
	candidates, err := r.geocoder.DirectGeocode(ctx, query)
	if err != nil {
		return nil, err
	}

	locations := make([]Location, 0, len(candidates))
	for _, c := range candidates {
		locations = append(locations, fromCandidate(c))
	}
	return locations, nil
}

// ResolveByCoordinates synthesizes a Location for raw device coordinates with
// the placeholder name. No network call is made.
func (r *Resolver) ResolveByCoordinates(lat, lon float64) Location {
	return Location{
		Name: CurrentLocationName,
		Lat:  lat,
		Lon:  lon,
	}
}

func fromCandidate(c openweather.GeoCandidate) Location {
	return Location{
		Name:    c.Name,
		Country: c.Country,
		State:   c.State,
		Lat:     c.Lat,
		Lon:     c.Lon,
	}
}
