package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CacheInvalidator drops the cached report.
type CacheInvalidator interface {
	DeleteReport(ctx context.Context) error
}

type APIHandler struct {
	cache CacheInvalidator
}

func NewAPIHandler(cache CacheInvalidator) *APIHandler {
	return &APIHandler{cache: cache}
}

func (h *APIHandler) Register(router gin.IRouter) {
	router.DELETE("/api/cache/report", h.DeleteCachedReport)
}

// DeleteCachedReport forces the next report request to recompute.
func (h *APIHandler) DeleteCachedReport(c *gin.Context) {
	if err := h.cache.DeleteReport(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"key":    "report",
		"status": "deleted",
	})
}
