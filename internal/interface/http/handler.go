package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/hairmatch/internal/domain/discovery"
	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	scoringSvc   scoring.Service
	discoverySvc discovery.Service
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(scoringSvc scoring.Service, discoverySvc discovery.Service, logger *slog.Logger) *Handler {
	return &Handler{
		scoringSvc:   scoringSvc,
		discoverySvc: discoverySvc,
		logger:       logger.With("component", "http.handler"),
	}
}

// ScoreProduct computes and stores the caller's score for a product.
func (h *Handler) ScoreProduct(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		abortWithError(c, unauthorized(nil))
		return
	}
	var req scoring.ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "Invalid JSON body", err))
		return
	}

	result, err := h.scoringSvc.Score(c.Request.Context(), userID, req)
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListScores returns the caller's stored scores, newest first.
func (h *Handler) ListScores(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		abortWithError(c, unauthorized(nil))
		return
	}
	items, err := h.scoringSvc.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// GetScore returns the caller's stored score for one product.
func (h *Handler) GetScore(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		abortWithError(c, unauthorized(nil))
		return
	}
	stored, err := h.scoringSvc.Get(c.Request.Context(), userID, c.Param("productId"))
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, stored)
}

// DiscoverRules synthesizes rules for a batch of unmatched ingredient names.
func (h *Handler) DiscoverRules(c *gin.Context) {
	var req discovery.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "Invalid JSON body", err))
		return
	}

	res, err := h.discoverySvc.Discover(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, asHTTPError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": res.Message, "count": res.Count})
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
