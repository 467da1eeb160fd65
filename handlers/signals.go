package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"thesis-radar/models"
	"thesis-radar/store"
)

type appendSignalRequest struct {
	TargetID   string `json:"target_id" binding:"required"`
	Score      int    `json:"score"`
	SignalText string `json:"signal_text"`
}

func (h *Handler) ListSignals(c *gin.Context) {
	signals, err := h.store.ListSignals(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, signals)
}

func (h *Handler) AppendSignal(c *gin.Context) {
	var req appendSignalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	sig := models.SignalEvent{
		TargetID:   req.TargetID,
		Score:      req.Score,
		SignalText: req.SignalText,
	}
	if err := h.store.AppendSignal(&sig); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// GetDeepDive returns the cached dive for a target, or a 200 null on a
// cache miss. The UI treats null as "nothing cached yet".
func (h *Handler) GetDeepDive(c *gin.Context) {
	dive, err := h.store.GetDeepDive(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusOK, nil)
		return
	}
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dive)
}

type upsertDeepDiveRequest struct {
	ID       string          `json:"id"`
	TargetID string          `json:"target_id" binding:"required"`
	Content  json.RawMessage `json:"content"`
}

func (h *Handler) UpsertDeepDive(c *gin.Context) {
	var req upsertDeepDiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if len(req.Content) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	// Content arrives either as a pre-serialized string or as an object.
	var content string
	if err := json.Unmarshal(req.Content, &content); err != nil {
		content = string(req.Content)
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	dive := models.DeepDive{ID: id, TargetID: req.TargetID, Content: content}
	if err := h.store.UpsertDeepDive(&dive); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}
