// README: Entry point; loads config, wires services, starts HTTP server and background schedulers.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"travelagent/internal/ai"
	"travelagent/internal/config"
	httptransport "travelagent/internal/http"
	"travelagent/internal/infra"
	"travelagent/internal/maps"
	"travelagent/internal/modules/cache"
	"travelagent/internal/modules/forecast"
	"travelagent/internal/modules/history"
	"travelagent/internal/modules/suggestion"
	"travelagent/internal/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model, weather.NewSimulator())
	if err != nil {
		log.Fatalf("gemini init: %v", err)
	}
	defer provider.Close()

	deps := suggestion.Deps{LLM: provider, CacheTTL: cfg.Cache.SuggestionTTL}
	var forecastCache forecast.Cache

	redisClient, err := infra.NewRedis(ctx, cfg.Redis.Addr)
	if err != nil {
		log.Fatal(err)
	}
	if redisClient != nil {
		defer redisClient.Close()
		store := cache.NewStore(redisClient)
		deps.Cache = store
		forecastCache = store
	} else {
		log.Println("TRAVEL_REDIS_ADDR not set, response cache disabled")
	}

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}
	var historySvc *history.Service
	if dbPool != nil {
		defer dbPool.Close()
		historySvc = history.NewService(history.NewStore(dbPool))
		deps.History = historySvc
		pruner, err := historySvc.StartPruner(ctx, cfg.History.PruneSpec, cfg.History.Retention)
		if err != nil {
			log.Fatalf("history pruner: %v", err)
		}
		defer pruner.Stop()
	} else {
		log.Println("TRAVEL_DB_DSN not set, suggestion history disabled")
	}

	if cfg.Maps.APIKey != "" {
		places, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatal(err)
		}
		deps.Geocoder = places
	}

	gin.SetMode(gin.ReleaseMode)
	router, err := httptransport.NewRouter(httptransport.RouterDeps{
		Suggestion:     suggestion.NewService(deps),
		Forecast:       forecast.NewService(provider, forecastCache, cfg.Cache.WeatherTTL),
		History:        historySvc,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes,
		RateRPS:        cfg.RateLimit.RPS,
		RateBurst:      cfg.RateLimit.Burst,
		TrustedProxies: cfg.HTTP.TrustedProxies,
	})
	if err != nil {
		log.Fatal(err)
	}

	if err := httptransport.NewServer(cfg.HTTP.Addr, router).Run(ctx); err != nil {
		log.Fatal(err)
	}
}
