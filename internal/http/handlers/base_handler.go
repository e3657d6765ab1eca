// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelagent/internal/logging"
	"travelagent/internal/modules/forecast"
	"travelagent/internal/modules/suggestion"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writeSuggestionError maps suggestion errors; failMsg is the client-facing
// text for provider failures.
func writeSuggestionError(c *gin.Context, op string, err error, failMsg string) {
	switch {
	case errors.Is(err, suggestion.ErrBadRequest), errors.Is(err, suggestion.ErrUnsupportedImage):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		logging.NewLogger(c.Request.Context()).Error(op, err)
		writeError(c, http.StatusInternalServerError, failMsg)
	}
}

func writeForecastError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, forecast.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		logging.NewLogger(c.Request.Context()).Error("weather", err)
		writeError(c, http.StatusInternalServerError, "Error fetching weather")
	}
}
