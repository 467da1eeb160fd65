package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"thesis-radar/models"
)

// MemoryStore is a map-backed Store. It keeps the same ordering, cascade
// and upsert semantics as the relational store and exists so tests and
// zero-config runs never need a database.
type MemoryStore struct {
	mu      sync.Mutex
	theses  map[string]models.Thesis
	targets map[string]models.Target
	signals []models.SignalEvent
	dives   map[string]models.DeepDive // keyed by target id
	nextSig uint
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		theses:  make(map[string]models.Thesis),
		targets: make(map[string]models.Target),
		dives:   make(map[string]models.DeepDive),
	}
}

// Theses

func (s *MemoryStore) ListTheses() ([]models.Thesis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	theses := make([]models.Thesis, 0, len(s.theses))
	for _, t := range s.theses {
		theses = append(theses, t)
	}
	sort.Slice(theses, func(i, j int) bool {
		return theses[i].UpdatedAt.After(theses[j].UpdatedAt)
	})
	return theses, nil
}

func (s *MemoryStore) GetThesis(id string) (*models.Thesis, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.theses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) CreateThesis(t *models.Thesis) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.theses[t.ID]; exists {
		return fmt.Errorf("thesis %s already exists", t.ID)
	}
	now := time.Now()
	t.IsActive = 1
	t.CreatedAt = now
	t.UpdatedAt = now
	s.theses[t.ID] = *t
	return nil
}

func (s *MemoryStore) UpdateThesis(id string, upd ThesisUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.theses[id]
	if !ok {
		return ErrNotFound
	}
	t.Title = upd.Title
	t.Description = upd.Description
	t.SizeRange = upd.SizeRange
	t.FundingStage = upd.FundingStage
	t.Geography = upd.Geography
	t.Technologies = upd.Technologies
	t.UpdatedAt = time.Now()
	s.theses[id] = t
	return nil
}

func (s *MemoryStore) ToggleThesis(id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.theses[id]
	if !ok {
		return 0, ErrNotFound
	}
	if t.IsActive == 1 {
		t.IsActive = 0
	} else {
		t.IsActive = 1
	}
	t.UpdatedAt = time.Now()
	s.theses[id] = t
	return t.IsActive, nil
}

func (s *MemoryStore) DeleteThesis(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.theses, id)
	for tid, target := range s.targets {
		if target.ThesisID == id {
			s.removeTargetLocked(tid)
		}
	}
	return nil
}

// removeTargetLocked drops a target together with its signal history and
// cached dive. Callers must hold the mutex.
func (s *MemoryStore) removeTargetLocked(id string) {
	delete(s.targets, id)
	delete(s.dives, id)
	kept := s.signals[:0]
	for _, sig := range s.signals {
		if sig.TargetID != id {
			kept = append(kept, sig)
		}
	}
	s.signals = kept
}

// Targets

func (s *MemoryStore) ListTargets(thesisID string) ([]models.Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	targets := make([]models.Target, 0)
	for _, t := range s.targets {
		if t.ThesisID == thesisID {
			targets = append(targets, t)
		}
	}
	sort.Slice(targets, func(i, j int) bool {
		return targets[i].SignalScore > targets[j].SignalScore
	})
	return targets, nil
}

func (s *MemoryStore) GetTarget(id string) (*models.Target, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.targets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (s *MemoryStore) CreateTarget(t *models.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createTargetLocked(t)
}

func (s *MemoryStore) createTargetLocked(t *models.Target) error {
	if _, exists := s.targets[t.ID]; exists {
		return fmt.Errorf("target %s already exists", t.ID)
	}
	now := time.Now()
	if t.LastUpdated.IsZero() {
		t.LastUpdated = now
	}
	t.CreatedAt = now
	s.targets[t.ID] = *t
	return nil
}

func (s *MemoryStore) CreateTargets(thesisID string, targets []models.Target) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate the whole batch before touching the maps: all or nothing.
	seen := make(map[string]bool, len(targets))
	for _, t := range targets {
		if _, exists := s.targets[t.ID]; exists || seen[t.ID] {
			return fmt.Errorf("target %s already exists", t.ID)
		}
		seen[t.ID] = true
	}
	for i := range targets {
		targets[i].ThesisID = thesisID
		if err := s.createTargetLocked(&targets[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) PatchTarget(id string, patch TargetPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.targets[id]
	if !ok {
		return ErrNotFound
	}
	if patch.SignalScore != nil {
		t.SignalScore = *patch.SignalScore
	}
	if patch.TopSignal != nil {
		t.TopSignal = *patch.TopSignal
	}
	if patch.IsPinned != nil {
		t.IsPinned = *patch.IsPinned
	}
	if patch.IsDismissed != nil {
		t.IsDismissed = *patch.IsDismissed
	}
	t.LastUpdated = time.Now()
	s.targets[id] = t
	return nil
}

func (s *MemoryStore) DeleteTarget(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.removeTargetLocked(id)
	return nil
}

// Signal history

func (s *MemoryStore) ListSignals(targetID string) ([]models.SignalEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	signals := make([]models.SignalEvent, 0)
	for _, sig := range s.signals {
		if sig.TargetID == targetID {
			signals = append(signals, sig)
		}
	}
	// Newest first; IDs break ties for rows appended in the same instant.
	sort.Slice(signals, func(i, j int) bool {
		if signals[i].CreatedAt.Equal(signals[j].CreatedAt) {
			return signals[i].ID > signals[j].ID
		}
		return signals[i].CreatedAt.After(signals[j].CreatedAt)
	})
	return signals, nil
}

func (s *MemoryStore) AppendSignal(sig *models.SignalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextSig++
	sig.ID = s.nextSig
	if sig.CreatedAt.IsZero() {
		sig.CreatedAt = time.Now()
	}
	s.signals = append(s.signals, *sig)
	return nil
}

// Deep dives

func (s *MemoryStore) GetDeepDive(targetID string) (*models.DeepDive, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dives[targetID]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *MemoryStore) UpsertDeepDive(d *models.DeepDive) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	s.dives[d.TargetID] = *d
	return nil
}

// Stats

func (s *MemoryStore) Stats() (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &Stats{
		TotalTheses:  int64(len(s.theses)),
		TotalTargets: int64(len(s.targets)),
		ThesesStats:  []ThesisStats{},
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	for _, sig := range s.signals {
		if !sig.CreatedAt.Before(weekAgo) {
			stats.WeeklySignals++
		}
	}

	signalsByTarget := make(map[string]int)
	for _, sig := range s.signals {
		signalsByTarget[sig.TargetID]++
	}

	ordered := make([]models.Thesis, 0, len(s.theses))
	for _, t := range s.theses {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].UpdatedAt.After(ordered[j].UpdatedAt)
	})

	for _, t := range ordered {
		ts := ThesisStats{ID: t.ID}
		for _, target := range s.targets {
			if target.ThesisID == t.ID {
				ts.TargetsCount++
				ts.SignalsCount += signalsByTarget[target.ID]
			}
		}
		stats.ThesesStats = append(stats.ThesesStats, ts)
	}

	return stats, nil
}
