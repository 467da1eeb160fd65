package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"thesis-radar/models"
	"thesis-radar/store"
)

type targetPayload struct {
	ID                     string `json:"id" binding:"required"`
	ThesisID               string `json:"thesis_id"`
	Name                   string `json:"name" binding:"required"`
	OneLiner               string `json:"one_liner"`
	Stage                  string `json:"stage"`
	Headcount              string `json:"headcount"`
	SignalScore            int    `json:"signal_score"`
	TopSignal              string `json:"top_signal"`
	FitRating              string `json:"fit_rating"`
	ClientOverlapCurrent   string `json:"client_overlap_current"`
	ClientOverlapPotential string `json:"client_overlap_potential"`
	ProductRating          string `json:"product_rating"`
	ProductScore           int    `json:"product_score"`
	Valuation              string `json:"valuation"`
	FundingStageDetail     string `json:"funding_stage_detail"`
	CurrentInvestors       string `json:"current_investors"`
}

func (p targetPayload) toModel() models.Target {
	return models.Target{
		ID:                     p.ID,
		ThesisID:               p.ThesisID,
		Name:                   p.Name,
		OneLiner:               p.OneLiner,
		Stage:                  p.Stage,
		Headcount:              p.Headcount,
		SignalScore:            p.SignalScore,
		TopSignal:              p.TopSignal,
		FitRating:              p.FitRating,
		ClientOverlapCurrent:   p.ClientOverlapCurrent,
		ClientOverlapPotential: p.ClientOverlapPotential,
		ProductRating:          p.ProductRating,
		ProductScore:           p.ProductScore,
		Valuation:              p.Valuation,
		FundingStageDetail:     p.FundingStageDetail,
		CurrentInvestors:       p.CurrentInvestors,
	}
}

func (h *Handler) ListTargets(c *gin.Context) {
	targets, err := h.store.ListTargets(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func (h *Handler) CreateTarget(c *gin.Context) {
	var req targetPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.ThesisID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "thesis_id is required"})
		return
	}

	target := req.toModel()
	if err := h.store.CreateTarget(&target); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": target.ID})
}

type bulkTargetsRequest struct {
	ThesisID string          `json:"thesis_id" binding:"required"`
	Targets  json.RawMessage `json:"targets"`
}

func (h *Handler) BulkCreateTargets(c *gin.Context) {
	var req bulkTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	// A JSON null unmarshals into a nil slice without error, so the nil
	// check is what rejects it alongside strings, numbers and objects.
	var rows []targetPayload
	if len(req.Targets) == 0 || json.Unmarshal(req.Targets, &rows) != nil || rows == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid targets data"})
		return
	}

	targets := make([]models.Target, len(rows))
	for i, row := range rows {
		targets[i] = row.toModel()
	}
	if err := h.store.CreateTargets(req.ThesisID, targets); err != nil {
		h.storeError(c, err)
		return
	}
	h.logger.Info("bulk inserted targets",
		zap.String("thesis_id", req.ThesisID),
		zap.Int("count", len(targets)))
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (h *Handler) PatchTarget(c *gin.Context) {
	var patch store.TargetPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	// An empty patch would only bump last_updated; reject it.
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No updatable fields provided"})
		return
	}
	if err := h.store.PatchTarget(c.Param("id"), patch); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) DeleteTarget(c *gin.Context) {
	if err := h.store.DeleteTarget(c.Param("id")); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
