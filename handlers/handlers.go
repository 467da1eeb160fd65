package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"thesis-radar/ai"
	"thesis-radar/store"
)

// Handler carries the request-scoped dependencies: the persistence store,
// the AI orchestration client (nil when no API key is configured) and the
// logger. Everything is injected at startup; there is no global state.
type Handler struct {
	store  store.Store
	ai     *ai.Client
	logger *zap.Logger
}

func New(s store.Store, aiClient *ai.Client, logger *zap.Logger) *Handler {
	return &Handler{store: s, ai: aiClient, logger: logger}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// storeError maps a store failure to a response: ErrNotFound becomes a 404,
// anything else a 500 carrying the underlying message.
func (h *Handler) storeError(c *gin.Context, err error) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	h.logger.Error("store operation failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
