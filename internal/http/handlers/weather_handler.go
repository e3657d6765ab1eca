// README: Weather handler; delegates to the forecast module.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelagent/internal/modules/forecast"
	"travelagent/internal/types"
)

type WeatherHandler struct {
	forecast *forecast.Service
}

func NewWeatherHandler(svc *forecast.Service) *WeatherHandler {
	return &WeatherHandler{forecast: svc}
}

// Get handles POST /api/weather.
func (h *WeatherHandler) Get(c *gin.Context) {
	var req types.WeatherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Destination) == "" {
		writeError(c, http.StatusBadRequest, "missing destination")
		return
	}

	res, err := h.forecast.Lookup(c.Request.Context(), req.Destination)
	if err != nil {
		writeForecastError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, res)
}
