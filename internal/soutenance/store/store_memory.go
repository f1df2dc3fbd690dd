// Package store persists defense records. A candidate has at most one defense
// that is neither COMPLETED nor REJECTED.
package store

import (
	"context"
	"sort"
	"sync"

	"doctorat/internal/soutenance/models"
	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu         sync.RWMutex
	soutenance map[id.SoutenanceID]*models.Soutenance
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{soutenance: make(map[id.SoutenanceID]*models.Soutenance)}
}

// Create inserts s unless its candidate already has an active defense.
func (m *InMemoryStore) Create(_ context.Context, s *models.Soutenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.soutenance[s.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	for _, existing := range m.soutenance {
		if existing.DoctorantID == s.DoctorantID && !existing.Status.IsTerminal() {
			return sentinel.ErrAlreadyUsed
		}
	}
	m.soutenance[s.ID] = s.Clone()
	return nil
}

func (m *InMemoryStore) FindByID(_ context.Context, soutenanceID id.SoutenanceID) (*models.Soutenance, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.soutenance[soutenanceID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.Clone(), nil
}

func (m *InMemoryStore) ListByDoctorant(_ context.Context, doctorantID id.DoctorantID) ([]*models.Soutenance, error) {
	return m.filter(func(s *models.Soutenance) bool { return s.DoctorantID == doctorantID }), nil
}

func (m *InMemoryStore) ListByStatus(_ context.Context, status models.Status) ([]*models.Soutenance, error) {
	return m.filter(func(s *models.Soutenance) bool { return s.Status == status }), nil
}

// Update replaces the stored record when its version equals expectedVersion.
func (m *InMemoryStore) Update(_ context.Context, s *models.Soutenance, expectedVersion int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	current, ok := m.soutenance[s.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != expectedVersion {
		return sentinel.ErrConflict
	}
	s.Version = expectedVersion + 1
	m.soutenance[s.ID] = s.Clone()
	return nil
}

func (m *InMemoryStore) filter(keep func(*models.Soutenance) bool) []*models.Soutenance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*models.Soutenance
	for _, s := range m.soutenance {
		if keep(s) {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
