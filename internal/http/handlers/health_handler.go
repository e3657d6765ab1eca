package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root handles GET /.
func Root(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"message": "AI-Powered Travel Agent API is running"})
}

// Health handles GET /health.
func Health(c *gin.Context) {
	writeJSON(c, http.StatusOK, gin.H{"status": "ok"})
}
