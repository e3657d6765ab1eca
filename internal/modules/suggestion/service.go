// README: Suggestion service validates input, consults the cache and forwards to the LLM.
package suggestion

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"travelagent/internal/ai"
	"travelagent/internal/logging"
	"travelagent/internal/modules/cache"
	"travelagent/internal/modules/history"
	"travelagent/internal/types"
)

// Deps wires optional collaborators; nil Cache, History or Geocoder disables them.
type Deps struct {
	LLM      ai.LLMProvider
	Cache    Cache
	CacheTTL time.Duration
	History  Recorder
	Geocoder Geocoder
}

type Service struct {
	llm      ai.LLMProvider
	cache    Cache
	cacheTTL time.Duration
	history  Recorder
	geocoder Geocoder
}

func NewService(deps Deps) *Service {
	return &Service{
		llm:      deps.LLM,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		history:  deps.History,
		geocoder: deps.Geocoder,
	}
}

func (s *Service) ByLocation(ctx context.Context, cmd LocationCommand) ([]types.Destination, error) {
	location := strings.TrimSpace(cmd.Location)
	if location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrBadRequest)
	}
	prefs := types.CleanPreferences(cmd.Preferences)
	logger := logging.NewLogger(ctx)

	key := cache.SuggestionKey(string(history.KindLocation), location, prefs)
	if dests, ok := s.cached(ctx, key); ok {
		logger.Infof("suggest_location", "cache hit location=%q", location)
		return dests, nil
	}

	q := ai.LocationQuery{Location: location, Preferences: prefs}
	if s.geocoder != nil {
		addr, err := s.geocoder.ResolveAddress(ctx, location)
		if err != nil {
			logger.Warnf("suggest_location", "geocoding %q failed: %v", location, err)
		} else {
			q.Address = addr
		}
	}

	dests, err := s.llm.SuggestByLocation(ctx, q)
	if err != nil {
		logger.Error("suggest_location", err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	s.remember(ctx, key, history.KindLocation, location, prefs, dests)
	return dests, nil
}

func (s *Service) ByImage(ctx context.Context, cmd ImageCommand) ([]types.Destination, error) {
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: file is required", ErrBadRequest)
	}
	mt := mimetype.Detect(cmd.Data)
	format, ok := types.ImageFormat(mt.String())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, mt.String())
	}
	prefs := types.CleanPreferences(cmd.Preferences)
	logger := logging.NewLogger(ctx)

	digest := cache.Digest(cmd.Data)
	key := cache.SuggestionKey(string(history.KindImage), digest, prefs)
	if dests, ok := s.cached(ctx, key); ok {
		logger.Infof("suggest_image", "cache hit digest=%s", digest[:12])
		return dests, nil
	}

	dests, err := s.llm.SuggestByImage(ctx, ai.ImageQuery{Data: cmd.Data, Format: format, Preferences: prefs})
	if err != nil {
		logger.Error("suggest_image", err)
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	query := cmd.Filename
	if query == "" {
		query = digest[:12]
	}
	s.remember(ctx, key, history.KindImage, query, prefs, dests)
	return dests, nil
}

func (s *Service) cached(ctx context.Context, key string) ([]types.Destination, bool) {
	if s.cache == nil {
		return nil, false
	}
	var dests []types.Destination
	ok, err := s.cache.GetJSON(ctx, key, &dests)
	if err != nil {
		logging.NewLogger(ctx).Warnf("cache_get", "key=%s error=%v", key, err)
		return nil, false
	}
	return dests, ok
}

// remember caches and records a successful answer. Failures here never fail the request.
func (s *Service) remember(ctx context.Context, key string, kind history.Kind, query string, prefs []string, dests []types.Destination) {
	logger := logging.NewLogger(ctx)
	if s.cache != nil && s.cacheTTL > 0 {
		if err := s.cache.SetJSON(ctx, key, dests, s.cacheTTL); err != nil {
			logger.Warnf("cache_set", "key=%s error=%v", key, err)
		}
	}
	if s.history != nil {
		if err := s.history.Record(ctx, kind, query, prefs, dests); err != nil {
			logger.Warnf("history_record", "kind=%s error=%v", kind, err)
		}
	}
}
