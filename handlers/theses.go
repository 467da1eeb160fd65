package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"thesis-radar/models"
	"thesis-radar/store"
)

type createThesisRequest struct {
	ID           string `json:"id" binding:"required"`
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	SizeRange    string `json:"size_range"`
	FundingStage string `json:"funding_stage"`
	Geography    string `json:"geography"`
	Technologies string `json:"technologies"`
}

func (h *Handler) ListTheses(c *gin.Context) {
	theses, err := h.store.ListTheses()
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, theses)
}

func (h *Handler) CreateThesis(c *gin.Context) {
	var req createThesisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	thesis := models.Thesis{
		ID:           req.ID,
		Title:        req.Title,
		Description:  req.Description,
		SizeRange:    req.SizeRange,
		FundingStage: req.FundingStage,
		Geography:    req.Geography,
		Technologies: req.Technologies,
	}
	if err := h.store.CreateThesis(&thesis); err != nil {
		h.storeError(c, err)
		return
	}
	h.logger.Info("created thesis", zap.String("id", thesis.ID), zap.String("title", thesis.Title))
	c.JSON(http.StatusCreated, gin.H{"id": thesis.ID})
}

func (h *Handler) GetThesis(c *gin.Context) {
	thesis, err := h.store.GetThesis(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, thesis)
}

func (h *Handler) UpdateThesis(c *gin.Context) {
	var upd store.ThesisUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := h.store.UpdateThesis(c.Param("id"), upd); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) ToggleThesis(c *gin.Context) {
	id := c.Param("id")
	active, err := h.store.ToggleThesis(id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	h.logger.Info("toggled thesis", zap.String("id", id), zap.Int("is_active", active))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteThesis(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.DeleteThesis(id); err != nil {
		h.storeError(c, err)
		return
	}
	h.logger.Info("deleted thesis", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
