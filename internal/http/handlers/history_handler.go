// README: History handler lists recent suggestion requests.
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"travelagent/internal/logging"
	"travelagent/internal/modules/history"
)

type HistoryHandler struct {
	history *history.Service
}

// NewHistoryHandler accepts a nil service, in which case every call reports
// history as disabled.
func NewHistoryHandler(svc *history.Service) *HistoryHandler {
	return &HistoryHandler{history: svc}
}

// List handles GET /api/history?limit=N.
func (h *HistoryHandler) List(c *gin.Context) {
	if h.history == nil {
		writeError(c, http.StatusNotFound, history.ErrDisabled.Error())
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(c, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.history.Recent(c.Request.Context(), limit)
	if err != nil {
		if errors.Is(err, history.ErrDisabled) {
			writeError(c, http.StatusNotFound, err.Error())
			return
		}
		logging.NewLogger(c.Request.Context()).Error("history", err)
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"entries": entries})
}
