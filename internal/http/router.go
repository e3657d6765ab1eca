// README: HTTP router registration.
package http

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"travelagent/internal/http/handlers"
	"travelagent/internal/http/middleware"
	"travelagent/internal/modules/forecast"
	"travelagent/internal/modules/history"
	"travelagent/internal/modules/suggestion"
)

// RouterDeps carries the services behind the API. History may be nil.
type RouterDeps struct {
	Suggestion     *suggestion.Service
	Forecast       *forecast.Service
	History        *history.Service
	MaxUploadBytes int64
	RateRPS        float64
	RateBurst      int
	// TrustedProxies may set the client IP used for rate limiting; nil trusts none.
	TrustedProxies []string
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(deps.TrustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}
	r.Use(middleware.RequestID(), middleware.Recovery(), middleware.CORS())
	r.MaxMultipartMemory = deps.MaxUploadBytes

	r.GET("/", handlers.Root)
	r.GET("/health", handlers.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(deps.RateRPS, deps.RateBurst))

	suggestionHandler := handlers.NewSuggestionHandler(deps.Suggestion, deps.MaxUploadBytes)
	api.POST("/suggest-by-location", suggestionHandler.ByLocation)
	api.POST("/suggest-by-image", suggestionHandler.ByImage)

	weatherHandler := handlers.NewWeatherHandler(deps.Forecast)
	api.POST("/weather", weatherHandler.Get)

	historyHandler := handlers.NewHistoryHandler(deps.History)
	api.GET("/history", historyHandler.List)

	return r, nil
}
