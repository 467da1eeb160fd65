package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"thesis-radar/ai"
	"thesis-radar/models"
	"thesis-radar/store"
)

// requireAI guards the research endpoints: without a configured Gemini key
// the orchestration client is nil and these routes answer 503.
func (h *Handler) requireAI(c *gin.Context) bool {
	if h.ai == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "GEMINI_API_KEY not configured"})
		return false
	}
	return true
}

// aiError surfaces a model failure as a 502. There is no retry; the caller
// decides whether to try again.
func (h *Handler) aiError(c *gin.Context, err error) {
	h.logger.Error("model call failed", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
}

type suggestThesesRequest struct {
	Constraints string `json:"constraints"`
}

func (h *Handler) SuggestTheses(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}
	// The body is optional; an absent one means no extra constraints.
	var req suggestThesesRequest
	_ = c.ShouldBindJSON(&req)

	theses, err := h.ai.SuggestTheses(c.Request.Context(), req.Constraints)
	if err != nil {
		h.aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, theses)
}

func (h *Handler) CalibrateThesis(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}
	thesis, err := h.store.GetThesis(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}

	cal, err := h.ai.InterpretThesis(c.Request.Context(), *thesis)
	if err != nil {
		h.aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, cal)
}

// ExecuteSearch discovers candidate targets for a thesis and persists them
// in one batch. When the body carries a calibration the search follows its
// plan; otherwise it runs directly off the thesis.
func (h *Handler) ExecuteSearch(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}
	thesis, err := h.store.GetThesis(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}

	var cal ai.Calibration
	calibrated := c.ShouldBindJSON(&cal) == nil && cal.MarketContext != ""

	var candidates []ai.CandidateTarget
	if calibrated {
		candidates, err = h.ai.ExecuteSearch(c.Request.Context(), cal)
	} else {
		candidates, err = h.ai.GenerateTargets(c.Request.Context(), *thesis)
	}
	if err != nil {
		h.aiError(c, err)
		return
	}

	targets := make([]models.Target, len(candidates))
	for i, cand := range candidates {
		targets[i] = models.Target{
			ID:                     uuid.NewString(),
			ThesisID:               thesis.ID,
			Name:                   cand.Name,
			OneLiner:               cand.OneLiner,
			Stage:                  cand.Stage,
			Headcount:              cand.Headcount,
			SignalScore:            cand.SignalScore,
			TopSignal:              cand.TopSignal,
			FitRating:              cand.FitRating,
			ClientOverlapCurrent:   cand.ClientOverlapCurrent,
			ClientOverlapPotential: cand.ClientOverlapPotential,
			ProductRating:          cand.ProductRating,
			ProductScore:           cand.ProductScore,
			Valuation:              cand.Valuation,
			FundingStageDetail:     cand.FundingStageDetail,
			CurrentInvestors:       cand.CurrentInvestors,
		}
	}
	if err := h.store.CreateTargets(thesis.ID, targets); err != nil {
		h.storeError(c, err)
		return
	}
	h.logger.Info("search executed",
		zap.String("thesis_id", thesis.ID),
		zap.Bool("calibrated", calibrated),
		zap.Int("targets", len(targets)))
	c.JSON(http.StatusCreated, targets)
}

// RefreshSignals re-scores a thesis's tracked targets and appends one
// signal-history row per update.
func (h *Handler) RefreshSignals(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}
	thesis, err := h.store.GetThesis(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	targets, err := h.store.ListTargets(thesis.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	// Dismissed targets are no longer monitored.
	tracked := targets[:0]
	for _, t := range targets {
		if t.IsDismissed == 0 {
			tracked = append(tracked, t)
		}
	}

	updates, err := h.ai.RefreshSignals(c.Request.Context(), *thesis, tracked)
	if err != nil {
		h.aiError(c, err)
		return
	}

	for _, u := range updates {
		patch := store.TargetPatch{SignalScore: &u.SignalScore, TopSignal: &u.TopSignal}
		if err := h.store.PatchTarget(u.ID, patch); err != nil {
			h.storeError(c, err)
			return
		}
		sig := models.SignalEvent{TargetID: u.ID, Score: u.SignalScore, SignalText: u.TopSignal}
		if err := h.store.AppendSignal(&sig); err != nil {
			h.storeError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"updates": updates})
}

type deepDiveRequest struct {
	Force bool `json:"force"`
}

// GenerateDeepDive returns the cached dossier for a target when one exists,
// generating and caching it otherwise. force regenerates unconditionally;
// either way the target keeps a single cached dive.
func (h *Handler) GenerateDeepDive(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}
	target, err := h.store.GetTarget(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	thesis, err := h.store.GetThesis(target.ThesisID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	var req deepDiveRequest
	_ = c.ShouldBindJSON(&req)

	if !req.Force {
		if cached, err := h.store.GetDeepDive(target.ID); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	content, err := h.ai.GenerateDeepDive(c.Request.Context(), *thesis, *target)
	if err != nil {
		h.aiError(c, err)
		return
	}
	serialized, err := json.Marshal(content)
	if err != nil {
		h.storeError(c, err)
		return
	}

	dive := models.DeepDive{
		ID:       uuid.NewString(),
		TargetID: target.ID,
		Content:  string(serialized),
	}
	if err := h.store.UpsertDeepDive(&dive); err != nil {
		h.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dive)
}

func (h *Handler) GenerateMarketMap(c *gin.Context) {
	if !h.requireAI(c) {
		return
	}
	thesis, err := h.store.GetThesis(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	targets, err := h.store.ListTargets(thesis.ID)
	if err != nil {
		h.storeError(c, err)
		return
	}

	m, err := h.ai.GenerateMarketMap(c.Request.Context(), *thesis, targets)
	if err != nil {
		h.aiError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}
