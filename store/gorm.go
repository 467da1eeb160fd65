package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"thesis-radar/models"
)

// GormStore is the relational Store. It works against both SQLite and
// Postgres through the gorm dialectors wired up in the database package.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Theses

func (s *GormStore) ListTheses() ([]models.Thesis, error) {
	var theses []models.Thesis
	err := s.db.Order("updated_at DESC").Find(&theses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list theses: %w", err)
	}
	return theses, nil
}

func (s *GormStore) GetThesis(id string) (*models.Thesis, error) {
	var thesis models.Thesis
	err := s.db.Where("id = ?", id).First(&thesis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load thesis %s: %w", id, err)
	}
	return &thesis, nil
}

func (s *GormStore) CreateThesis(t *models.Thesis) error {
	t.IsActive = 1
	if err := s.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create thesis: %w", err)
	}
	return nil
}

func (s *GormStore) UpdateThesis(id string, upd ThesisUpdate) error {
	var thesis models.Thesis
	err := s.db.Where("id = ?", id).First(&thesis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load thesis %s: %w", id, err)
	}

	thesis.Title = upd.Title
	thesis.Description = upd.Description
	thesis.SizeRange = upd.SizeRange
	thesis.FundingStage = upd.FundingStage
	thesis.Geography = upd.Geography
	thesis.Technologies = upd.Technologies

	if err := s.db.Save(&thesis).Error; err != nil {
		return fmt.Errorf("failed to update thesis %s: %w", id, err)
	}
	return nil
}

func (s *GormStore) ToggleThesis(id string) (int, error) {
	var thesis models.Thesis
	err := s.db.Where("id = ?", id).First(&thesis).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load thesis %s: %w", id, err)
	}

	if thesis.IsActive == 1 {
		thesis.IsActive = 0
	} else {
		thesis.IsActive = 1
	}
	if err := s.db.Save(&thesis).Error; err != nil {
		return 0, fmt.Errorf("failed to toggle thesis %s: %w", id, err)
	}
	return thesis.IsActive, nil
}

func (s *GormStore) DeleteThesis(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&models.Target{}).Select("id").Where("thesis_id = ?", id)
		if err := tx.Where("target_id IN (?)", owned).Delete(&models.DeepDive{}).Error; err != nil {
			return err
		}
		owned = tx.Model(&models.Target{}).Select("id").Where("thesis_id = ?", id)
		if err := tx.Where("target_id IN (?)", owned).Delete(&models.SignalEvent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("thesis_id = ?", id).Delete(&models.Target{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Thesis{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete thesis %s: %w", id, err)
	}
	return nil
}

// Targets

func (s *GormStore) ListTargets(thesisID string) ([]models.Target, error) {
	var targets []models.Target
	err := s.db.Where("thesis_id = ?", thesisID).Order("signal_score DESC").Find(&targets).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list targets for thesis %s: %w", thesisID, err)
	}
	return targets, nil
}

func (s *GormStore) GetTarget(id string) (*models.Target, error) {
	var target models.Target
	err := s.db.Where("id = ?", id).First(&target).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load target %s: %w", id, err)
	}
	return &target, nil
}

func (s *GormStore) CreateTarget(t *models.Target) error {
	if t.LastUpdated.IsZero() {
		t.LastUpdated = time.Now()
	}
	if err := s.db.Create(t).Error; err != nil {
		return fmt.Errorf("failed to create target: %w", err)
	}
	return nil
}

func (s *GormStore) CreateTargets(thesisID string, targets []models.Target) error {
	if len(targets) == 0 {
		return nil
	}
	now := time.Now()
	for i := range targets {
		targets[i].ThesisID = thesisID
		if targets[i].LastUpdated.IsZero() {
			targets[i].LastUpdated = now
		}
	}
	// One transaction for the whole batch: a bad row writes nothing.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&targets).Error
	})
	if err != nil {
		return fmt.Errorf("failed to bulk insert targets: %w", err)
	}
	return nil
}

func (s *GormStore) PatchTarget(id string, patch TargetPatch) error {
	updates := map[string]interface{}{"last_updated": time.Now()}
	if patch.SignalScore != nil {
		updates["signal_score"] = *patch.SignalScore
	}
	if patch.TopSignal != nil {
		updates["top_signal"] = *patch.TopSignal
	}
	if patch.IsPinned != nil {
		updates["is_pinned"] = *patch.IsPinned
	}
	if patch.IsDismissed != nil {
		updates["is_dismissed"] = *patch.IsDismissed
	}

	res := s.db.Model(&models.Target{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("failed to patch target %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteTarget(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("target_id = ?", id).Delete(&models.DeepDive{}).Error; err != nil {
			return err
		}
		if err := tx.Where("target_id = ?", id).Delete(&models.SignalEvent{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Target{}).Error
	})
	if err != nil {
		return fmt.Errorf("failed to delete target %s: %w", id, err)
	}
	return nil
}

// Signal history

func (s *GormStore) ListSignals(targetID string) ([]models.SignalEvent, error) {
	var signals []models.SignalEvent
	err := s.db.Where("target_id = ?", targetID).Order("created_at DESC, id DESC").Find(&signals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list signals for target %s: %w", targetID, err)
	}
	return signals, nil
}

func (s *GormStore) AppendSignal(sig *models.SignalEvent) error {
	if err := s.db.Create(sig).Error; err != nil {
		return fmt.Errorf("failed to append signal: %w", err)
	}
	return nil
}

// Deep dives

func (s *GormStore) GetDeepDive(targetID string) (*models.DeepDive, error) {
	var dive models.DeepDive
	err := s.db.Where("target_id = ?", targetID).First(&dive).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load deep dive for target %s: %w", targetID, err)
	}
	return &dive, nil
}

func (s *GormStore) UpsertDeepDive(d *models.DeepDive) error {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	// Conflict on target_id, not id: one cached dive per target.
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "target_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "content", "created_at"}),
	}).Create(d).Error
	if err != nil {
		return fmt.Errorf("failed to upsert deep dive: %w", err)
	}
	return nil
}

// Stats

func (s *GormStore) Stats() (*Stats, error) {
	stats := &Stats{ThesesStats: []ThesisStats{}}

	if err := s.db.Model(&models.Thesis{}).Count(&stats.TotalTheses).Error; err != nil {
		return nil, fmt.Errorf("failed to count theses: %w", err)
	}
	if err := s.db.Model(&models.Target{}).Count(&stats.TotalTargets).Error; err != nil {
		return nil, fmt.Errorf("failed to count targets: %w", err)
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	err := s.db.Model(&models.SignalEvent{}).Where("created_at >= ?", weekAgo).Count(&stats.WeeklySignals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly signals: %w", err)
	}

	// One correlated-subquery statement instead of a per-thesis query loop.
	err = s.db.Model(&models.Thesis{}).
		Select(`theses.id,
			(SELECT COUNT(*) FROM targets WHERE targets.thesis_id = theses.id) AS targets_count,
			(SELECT COUNT(*) FROM signals_history WHERE signals_history.target_id IN
				(SELECT id FROM targets WHERE targets.thesis_id = theses.id)) AS signals_count`).
		Order("theses.updated_at DESC").
		Scan(&stats.ThesesStats).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate thesis stats: %w", err)
	}

	return stats, nil
}
