package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"clipfetch/internal/app"
	"clipfetch/internal/domain"
)

// DownloadHandler handles download-related HTTP requests
type DownloadHandler struct {
	manager *app.DownloadManager
	repo    domain.DownloadRepository
	logger  *zap.Logger
	// baseCtx outlives individual requests; resolution continues after the
	// HTTP response is written.
	baseCtx context.Context
}

// NewDownloadHandler creates a new download handler
func NewDownloadHandler(baseCtx context.Context, manager *app.DownloadManager, repo domain.DownloadRepository, logger *zap.Logger) *DownloadHandler {
	return &DownloadHandler{
		manager: manager,
		repo:    repo,
		logger:  logger,
		baseCtx: baseCtx,
	}
}

// AddDownloadRequest represents a request to resolve a video link. Text may
// be a bare URL or a whole chat message containing one.
type AddDownloadRequest struct {
	Text string `json:"text" binding:"required"`
}

// AddDownload handles POST /api/v1/downloads
func (h *DownloadHandler) AddDownload(c *gin.Context) {
	var req AddDownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	download, videoReq, err := h.manager.Submit(req.Text)
	if err != nil {
		// Text without a supported link is ignored, not failed
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.manager.Dispatch(h.baseCtx, download, videoReq)

	c.JSON(http.StatusCreated, download)
}

// GetDownload handles GET /api/v1/downloads/:id
func (h *DownloadHandler) GetDownload(c *gin.Context) {
	id := c.Param("id")

	download, err := h.repo.FindByID(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "download not found"})
		return
	}

	c.JSON(http.StatusOK, download)
}

// ConsumeArtifact handles DELETE /api/v1/downloads/:id/artifact. The
// front-end calls it after taking delivery of the file; the journal record
// survives with its file path cleared.
func (h *DownloadHandler) ConsumeArtifact(c *gin.Context) {
	id := c.Param("id")

	download, err := h.manager.ConsumeArtifact(id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, download)
}

// ListDownloads handles GET /api/v1/downloads
func (h *DownloadHandler) ListDownloads(c *gin.Context) {
	filters := make(map[string]interface{})

	if status := c.Query("status"); status != "" {
		filters["status"] = status
	}
	if platform := c.Query("platform"); platform != "" {
		filters["platform"] = platform
	}

	downloads, err := h.repo.FindAll(filters)
	if err != nil {
		h.logger.Error("Failed to list downloads", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, downloads)
}

// GetStats handles GET /api/v1/downloads/stats
func (h *DownloadHandler) GetStats(c *gin.Context) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.logger.Error("Failed to get stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
