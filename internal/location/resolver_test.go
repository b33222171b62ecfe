package location

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/skycast/skycast/internal/openweather"
)

type stubGeocoder struct {
	candidates []openweather.GeoCandidate
	err        error
	lastQuery  string
}

func (s *stubGeocoder) DirectGeocode(_ context.Context, query string) ([]openweather.GeoCandidate, error) {
	s.lastQuery = query
	return s.candidates, s.err
}

func TestResolveByNamePicksFirstCandidate(t *testing.T) {
	// Two candidates in a deliberate order: the first must win even when the
	// second looks like a better match for the query.
	geo := &stubGeocoder{
		candidates: []openweather.GeoCandidate{
			{Name: "Paris", Country: "US", State: "Texas", Lat: 33.66, Lon: -95.55},
			{Name: "Paris", Country: "FR", Lat: 48.85, Lon: 2.35},
		},
	}
	r := NewResolver(geo, zap.NewNop())

	loc, err := r.ResolveByName(context.Background(), "Paris")
	require.NoError(t, err)

	assert.Equal(t, "Paris", loc.Name)
	assert.Equal(t, "US", loc.Country)
	assert.Equal(t, "Texas", loc.State)
	assert.InDelta(t, 33.66, loc.Lat, 0.001)
	assert.Equal(t, "Paris", geo.lastQuery)
}

func TestResolveByNameNotFound(t *testing.T) {
	r := NewResolver(&stubGeocoder{}, zap.NewNop())

	_, err := r.ResolveByName(context.Background(), "Nowheresville")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveByNameUpstreamError(t *testing.T) {
	upstream := &openweather.UpstreamError{Endpoint: "geocoding", Status: 502}
	r := NewResolver(&stubGeocoder{err: upstream}, zap.NewNop())

	_, err := r.ResolveByName(context.Background(), "Paris")
	var ue *openweather.UpstreamError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, 502, ue.Status)
}

func TestSearchReturnsAllCandidates(t *testing.T) {
	geo := &stubGeocoder{
		candidates: []openweather.GeoCandidate{
			{Name: "Springfield", Country: "US", State: "Illinois"},
			{Name: "Springfield", Country: "US", State: "Missouri"},
			{Name: "Springfield", Country: "US", State: "Massachusetts"},
		},
	}
	r := NewResolver(geo, zap.NewNop())

	locs, err := r.Search(context.Background(), "Springfield")
	require.NoError(t, err)
	require.Len(t, locs, 3)
	assert.Equal(t, "Illinois", locs[0].State)
	assert.Equal(t, "Massachusetts", locs[2].State)
}

func TestResolveByCoordinates(t *testing.T) {
	r := NewResolver(&stubGeocoder{}, zap.NewNop())

	loc := r.ResolveByCoordinates(52.52, 13.41)
	assert.Equal(t, CurrentLocationName, loc.Name)
	assert.Empty(t, loc.Country)
	assert.InDelta(t, 52.52, loc.Lat, 0.001)
	assert.InDelta(t, 13.41, loc.Lon, 0.001)
}

func TestGeolocationFailureMessages(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{1, "please allow location access"},
		{2, "location information is unavailable"},
		{3, "location request timed out"},
		{7, "unknown"},
	}
	for _, tc := range cases {
		err := GeolocationFailure(tc.code)
		require.Error(t, err)
		assert.Contains(t, err.Error(), tc.want, "code=%d", tc.code)
	}

	var ge *GeolocationError
	require.True(t, errors.As(GeolocationFailure(1), &ge))
	assert.Equal(t, PermissionDenied, ge.Cause)
}
