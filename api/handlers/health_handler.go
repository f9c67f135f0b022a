package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clipfetch/internal/domain"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	repo domain.DownloadRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(repo domain.DownloadRepository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Ready handles GET /ready; the service is ready when the journal answers
func (h *HealthHandler) Ready(c *gin.Context) {
	if _, err := h.repo.Count(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
