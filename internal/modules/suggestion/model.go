// README: Suggestion commands, errors and the ports the service depends on.
package suggestion

import (
	"context"
	"errors"
	"time"

	"travelagent/internal/modules/history"
	"travelagent/internal/types"
)

var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnsupportedImage = errors.New("unsupported image type")
	ErrProvider         = errors.New("suggestion provider failed")
)

type LocationCommand struct {
	Location    string
	Preferences []string
}

type ImageCommand struct {
	Filename    string
	Data        []byte
	Preferences []string
}

// Cache is satisfied by *cache.Store.
type Cache interface {
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// Recorder is satisfied by *history.Service.
type Recorder interface {
	Record(ctx context.Context, kind history.Kind, query string, prefs []string, dests []types.Destination) error
}

// Geocoder is satisfied by *maps.PlacesService.
type Geocoder interface {
	ResolveAddress(ctx context.Context, query string) (string, error)
}
