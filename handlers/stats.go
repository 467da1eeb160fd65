package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStats returns the dashboard aggregate: total thesis and target counts,
// signal rows appended in the trailing seven days, and the per-thesis
// target/signal breakdown.
func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.store.Stats()
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
