package maps

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"
)

// ErrNoMatch is returned when geocoding finds nothing for the query.
var ErrNoMatch = errors.New("no place matched")

// Place represents a simplified geocoding result.
type Place struct {
	Name    string
	Address string
	PlaceID string
	Lat     float64
	Lng     float64
}

// PlacesService resolves free-text locations through the Google Geocoding API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService with the given API Key.
// Extra options (e.g. maps.WithBaseURL) are passed through to the client.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &PlacesService{client: client}, nil
}

// Resolve geocodes query and returns the best match.
func (s *PlacesService) Resolve(ctx context.Context, query string) (Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Place{}, ErrNoMatch
	}

	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  query,
		Language: "en",
	})
	if err != nil {
		return Place{}, fmt.Errorf("geocoding api error: %w", err)
	}
	if len(results) == 0 {
		return Place{}, ErrNoMatch
	}

	r := results[0]
	return Place{
		Name:    query,
		Address: r.FormattedAddress,
		PlaceID: r.PlaceID,
		Lat:     r.Geometry.Location.Lat,
		Lng:     r.Geometry.Location.Lng,
	}, nil
}

// ResolveAddress satisfies the suggestion module's geocoder contract.
func (s *PlacesService) ResolveAddress(ctx context.Context, query string) (string, error) {
	p, err := s.Resolve(ctx, query)
	if err != nil {
		return "", err
	}
	return p.Address, nil
}
