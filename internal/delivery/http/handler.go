package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/stocklens/backend/internal/domain"
	"github.com/stocklens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	scanService *usecase.ScanService
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(scanService *usecase.ScanService, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		scanService: scanService,
		logger:      logger.Named("http"),
	}
}

// MatchRequest is the body of POST /api/v1/matches
type MatchRequest struct {
	Scanned    *domain.ScannedRecord     `json:"scanned" binding:"required"`
	Candidates []domain.CatalogCandidate `json:"candidates" binding:"dive"`
}

// LookupRequest is the body of POST /api/v1/scans/lookup
type LookupRequest struct {
	Barcode    string                    `json:"barcode" binding:"required"`
	Candidates []domain.CatalogCandidate `json:"candidates" binding:"dive"`
}

// PreviewRequest is the body of POST /api/v1/enrichment/preview
type PreviewRequest struct {
	Scanned   *domain.ScannedRecord   `json:"scanned" binding:"required"`
	Candidate *domain.CatalogCandidate `json:"candidate" binding:"required"`
}

// MatchResponse carries ranked matches and the auto-apply pick, if any
type MatchResponse struct {
	Scanned   *domain.ScannedRecord `json:"scanned,omitempty"`
	Matches   []domain.MatchResult  `json:"matches"`
	AutoApply *domain.MatchResult   `json:"autoApply"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "stocklens-backend",
		"version": "1.0.0",
	})
}

// FindMatches ranks the supplied candidates against an already resolved scan
func (h *Handler) FindMatches(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	matches, err := h.scanService.MatchScan(c.Request.Context(), req.Scanned, req.Candidates)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchResponse{
		Matches:   matches,
		AutoApply: usecase.SelectAutoApply(matches),
	})
}

// LookupAndMatch resolves a barcode through the lookup provider and ranks the candidates
// against the result
func (h *Handler) LookupAndMatch(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	scanned, matches, err := h.scanService.LookupAndMatch(c.Request.Context(), req.Barcode, req.Candidates)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, MatchResponse{
		Scanned:   scanned,
		Matches:   matches,
		AutoApply: usecase.SelectAutoApply(matches),
	})
}

// PreviewEnrichment returns the patch enriching the candidate with the scan would apply
func (h *Handler) PreviewEnrichment(c *gin.Context) {
	if !h.ready(c) {
		return
	}

	var req PreviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	patch, err := h.scanService.Preview(req.Scanned, req.Candidate)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, patch)
}

func (h *Handler) ready(c *gin.Context) bool {
	if h.scanService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "scan service not configured",
		})
		return false
	}
	return true
}

func (h *Handler) badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   domain.ErrInvalidRequest.Error(),
		"details": err.Error(),
	})
}

// writeError maps domain errors onto HTTP status codes
func (h *Handler) writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		status = http.StatusTooManyRequests
	case errors.Is(err, domain.ErrLookupFailure):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(requestIDKey)),
			zap.Error(err),
		)
	}

	c.JSON(status, gin.H{"error": err.Error()})
}
