package maps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func newTestService(t *testing.T, body string) *PlacesService {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	svc, err := NewPlacesService("test-key", maps.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return svc
}

func TestResolve(t *testing.T) {
	svc := newTestService(t, `{
		"status": "OK",
		"results": [{
			"formatted_address": "Kyoto, Japan",
			"place_id": "ChIJ8cM8zdaoAWARPR27azYdlsA",
			"geometry": {"location": {"lat": 35.0116, "lng": 135.7681}}
		}]
	}`)

	p, err := svc.Resolve(context.Background(), " Kyoto ")
	require.NoError(t, err)
	assert.Equal(t, "Kyoto", p.Name)
	assert.Equal(t, "Kyoto, Japan", p.Address)
	assert.InDelta(t, 35.0116, p.Lat, 1e-6)

	addr, err := svc.ResolveAddress(context.Background(), "Kyoto")
	require.NoError(t, err)
	assert.Equal(t, "Kyoto, Japan", addr)
}

func TestResolveZeroResults(t *testing.T) {
	svc := newTestService(t, `{"status": "ZERO_RESULTS", "results": []}`)

	_, err := svc.Resolve(context.Background(), "Atlantis")
	require.Error(t, err)
}

func TestResolveEmptyQuery(t *testing.T) {
	svc := newTestService(t, `{"status": "OK", "results": []}`)

	_, err := svc.Resolve(context.Background(), "   ")
	assert.True(t, errors.Is(err, ErrNoMatch))
}
