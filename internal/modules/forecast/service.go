// README: Forecast service answers weather lookups for a destination, with a short-lived cache.
package forecast

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travelagent/internal/logging"
	"travelagent/internal/modules/cache"
	"travelagent/internal/types"
)

var (
	ErrBadRequest = errors.New("bad request")
	ErrProvider   = errors.New("weather provider failed")
)

// Provider is the slice of ai.LLMProvider this module uses.
type Provider interface {
	Weather(ctx context.Context, destination string) (*types.WeatherResult, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, v any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

type Service struct {
	provider Provider
	cache    Cache
	ttl      time.Duration
}

// NewService builds the service; c may be nil to disable caching.
func NewService(provider Provider, c Cache, ttl time.Duration) *Service {
	return &Service{provider: provider, cache: c, ttl: ttl}
}

func (s *Service) Lookup(ctx context.Context, destination string) (*types.WeatherResult, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", ErrBadRequest)
	}
	logger := logging.NewLogger(ctx)
	key := cache.WeatherKey(destination)

	if s.cache != nil {
		var hit types.WeatherResult
		ok, err := s.cache.GetJSON(ctx, key, &hit)
		if err != nil {
			logger.Warnf("weather", "cache get failed: %v", err)
		} else if ok {
			return &hit, nil
		}
	}

	res, err := s.provider.Weather(ctx, destination)
	if err != nil {
		logger.Error("weather", err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	if s.cache != nil && s.ttl > 0 {
		if err := s.cache.SetJSON(ctx, key, res, s.ttl); err != nil {
			logger.Warnf("weather", "cache set failed: %v", err)
		}
	}
	return res, nil
}
