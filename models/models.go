package models

import "time"

// Thesis is a strategic acquisition hypothesis. IDs are caller-generated
// opaque strings so the UI can create and reference rows optimistically.
type Thesis struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"not null"`
	SizeRange    string    `json:"size_range"`
	FundingStage string    `json:"funding_stage"`
	Geography    string    `json:"geography"`
	Technologies string    `json:"technologies"`
	IsActive     int       `json:"is_active" gorm:"default:1"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Targets []Target `json:"-" gorm:"foreignKey:ThesisID;constraint:OnDelete:CASCADE"`
}

func (Thesis) TableName() string { return "theses" }

// Target is a candidate company tracked under a thesis.
type Target struct {
	ID                     string    `json:"id" gorm:"primaryKey"`
	ThesisID               string    `json:"thesis_id" gorm:"index;not null"`
	Name                   string    `json:"name" gorm:"not null"`
	OneLiner               string    `json:"one_liner"`
	Stage                  string    `json:"stage"`
	Headcount              string    `json:"headcount"`
	SignalScore            int       `json:"signal_score" gorm:"default:0"`
	TopSignal              string    `json:"top_signal"`
	FitRating              string    `json:"fit_rating"`
	ClientOverlapCurrent   string    `json:"client_overlap_current"`
	ClientOverlapPotential string    `json:"client_overlap_potential"`
	ProductRating          string    `json:"product_rating"`
	ProductScore           int       `json:"product_score"`
	Valuation              string    `json:"valuation"`
	FundingStageDetail     string    `json:"funding_stage_detail"`
	CurrentInvestors       string    `json:"current_investors"`
	LastUpdated            time.Time `json:"last_updated"`
	IsPinned               int       `json:"is_pinned" gorm:"default:0"`
	IsDismissed            int       `json:"is_dismissed" gorm:"default:0"`
	CreatedAt              time.Time `json:"created_at"`

	Signals []SignalEvent `json:"-" gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE"`
	Dives   []DeepDive    `json:"-" gorm:"foreignKey:TargetID;constraint:OnDelete:CASCADE"`
}

func (Target) TableName() string { return "targets" }

// SignalEvent is one timestamped observation of a target's signal score.
// Rows are append-only: they are never updated or deleted individually,
// only removed when their target goes away.
type SignalEvent struct {
	ID         uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	TargetID   string    `json:"target_id" gorm:"index;not null"`
	Score      int       `json:"score"`
	SignalText string    `json:"signal_text"`
	CreatedAt  time.Time `json:"created_at"`
}

func (SignalEvent) TableName() string { return "signals_history" }

// DeepDive caches one AI-generated research dossier per target. The unique
// index on TargetID is what makes the cache hold: regenerating a dive
// replaces the old row instead of stacking a second one.
type DeepDive struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TargetID  string    `json:"target_id" gorm:"uniqueIndex;not null"`
	Content   string    `json:"content" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (DeepDive) TableName() string { return "deep_dives" }
