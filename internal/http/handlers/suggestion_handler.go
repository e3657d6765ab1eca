// README: Suggestion handlers for free-text locations and uploaded images.
package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"travelagent/internal/modules/suggestion"
	"travelagent/internal/types"
)

const imageField = "file"

type SuggestionHandler struct {
	suggestion *suggestion.Service
	maxUpload  int64
}

func NewSuggestionHandler(svc *suggestion.Service, maxUpload int64) *SuggestionHandler {
	return &SuggestionHandler{suggestion: svc, maxUpload: maxUpload}
}

// ByLocation handles POST /api/suggest-by-location.
func (h *SuggestionHandler) ByLocation(c *gin.Context) {
	var req types.LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if strings.TrimSpace(req.Location) == "" {
		writeError(c, http.StatusBadRequest, "missing location")
		return
	}

	dests, err := h.suggestion.ByLocation(c.Request.Context(), suggestion.LocationCommand{
		Location:    req.Location,
		Preferences: req.Preferences,
	})
	if err != nil {
		writeSuggestionError(c, "suggest_by_location", err, "Error generating suggestions")
		return
	}
	writeSuggestions(c, dests)
}

// ByImage handles POST /api/suggest-by-image. Preferences come from the
// "preferences" form field, falling back to the query string.
func (h *SuggestionHandler) ByImage(c *gin.Context) {
	if h.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)
	}

	fh, err := c.FormFile(imageField)
	if err != nil {
		if isTooLarge(err) {
			writeError(c, http.StatusRequestEntityTooLarge, "image too large")
			return
		}
		writeError(c, http.StatusBadRequest, "missing image file")
		return
	}
	if h.maxUpload > 0 && fh.Size > h.maxUpload {
		writeError(c, http.StatusRequestEntityTooLarge, "image too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable image file")
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		writeError(c, http.StatusBadRequest, "unreadable image file")
		return
	}

	rawPrefs := c.PostForm("preferences")
	if strings.TrimSpace(rawPrefs) == "" {
		rawPrefs = c.Query("preferences")
	}

	dests, err := h.suggestion.ByImage(c.Request.Context(), suggestion.ImageCommand{
		Filename:    fh.Filename,
		Data:        data,
		Preferences: types.SplitPreferences(rawPrefs),
	})
	if err != nil {
		writeSuggestionError(c, "suggest_by_image", err, "Error processing image")
		return
	}
	writeSuggestions(c, dests)
}

func isTooLarge(err error) bool {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func writeSuggestions(c *gin.Context, dests []types.Destination) {
	if dests == nil {
		dests = []types.Destination{}
	}
	writeJSON(c, http.StatusOK, types.SuggestionResponse{Destinations: dests})
}
