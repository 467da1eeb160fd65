package store

import (
	"errors"

	"thesis-radar/models"
)

// ErrNotFound is returned when a named resource does not exist. Handlers
// map it to a 404.
var ErrNotFound = errors.New("not found")

// ThesisUpdate carries the editable fields of a thesis for a full replace.
type ThesisUpdate struct {
	Title        string `json:"title" binding:"required"`
	Description  string `json:"description" binding:"required"`
	SizeRange    string `json:"size_range"`
	FundingStage string `json:"funding_stage"`
	Geography    string `json:"geography"`
	Technologies string `json:"technologies"`
}

// TargetPatch is the restricted partial update allowed on a target. Nil
// fields are left untouched; last_updated is bumped regardless.
type TargetPatch struct {
	SignalScore *int    `json:"signal_score"`
	TopSignal   *string `json:"top_signal"`
	IsPinned    *int    `json:"is_pinned"`
	IsDismissed *int    `json:"is_dismissed"`
}

func (p TargetPatch) Empty() bool {
	return p.SignalScore == nil && p.TopSignal == nil && p.IsPinned == nil && p.IsDismissed == nil
}

// ThesisStats is the per-thesis breakdown in the stats response.
type ThesisStats struct {
	ID           string `json:"id"`
	TargetsCount int    `json:"targets_count"`
	SignalsCount int    `json:"signals_count"`
}

// Stats is the dashboard aggregate.
type Stats struct {
	TotalTheses   int64         `json:"total_theses"`
	TotalTargets  int64         `json:"total_targets"`
	WeeklySignals int64         `json:"weekly_signals"`
	ThesesStats   []ThesisStats `json:"thesesStats"`
}

// Store is the persistence contract behind the HTTP surface. One relational
// implementation (SQLite or Postgres via gorm) serves production; a
// map-backed one serves tests. Both share these semantics:
//
//   - ListTheses orders by updated_at descending, ListTargets by
//     signal_score descending, ListSignals by created_at descending.
//   - CreateTargets is atomic: a failing row aborts the whole batch.
//   - DeleteThesis cascades to targets, their signal history and deep dives.
//   - UpsertDeepDive keeps at most one dive per target.
type Store interface {
	ListTheses() ([]models.Thesis, error)
	GetThesis(id string) (*models.Thesis, error)
	CreateThesis(t *models.Thesis) error
	UpdateThesis(id string, upd ThesisUpdate) error
	ToggleThesis(id string) (int, error)
	DeleteThesis(id string) error

	ListTargets(thesisID string) ([]models.Target, error)
	GetTarget(id string) (*models.Target, error)
	CreateTarget(t *models.Target) error
	CreateTargets(thesisID string, targets []models.Target) error
	PatchTarget(id string, patch TargetPatch) error
	DeleteTarget(id string) error

	ListSignals(targetID string) ([]models.SignalEvent, error)
	AppendSignal(s *models.SignalEvent) error

	GetDeepDive(targetID string) (*models.DeepDive, error)
	UpsertDeepDive(d *models.DeepDive) error

	Stats() (*Stats, error)
}
