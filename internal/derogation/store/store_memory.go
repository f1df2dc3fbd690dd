// Package store persists derogation records with version-checked writes.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"doctorat/internal/derogation/models"
	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/sentinel"
)

// InMemoryStore keeps derogations in a map guarded by a RWMutex. Reads return
// clones; Update succeeds only when the caller's version matches.
type InMemoryStore struct {
	mu         sync.RWMutex
	derogation map[id.DerogationID]*models.Derogation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{derogation: make(map[id.DerogationID]*models.Derogation)}
}

// CreateIfNonePending inserts d unless the candidate already has a pending
// request of the same type.
func (s *InMemoryStore) CreateIfNonePending(_ context.Context, d *models.Derogation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.derogation {
		if existing.DoctorantID == d.DoctorantID && existing.Type == d.Type && existing.Status.IsPending() {
			return sentinel.ErrAlreadyUsed
		}
	}
	if _, ok := s.derogation[d.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.derogation[d.ID] = d.Clone()
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, derogationID id.DerogationID) (*models.Derogation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.derogation[derogationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *InMemoryStore) ListByDoctorant(_ context.Context, doctorantID id.DoctorantID) ([]*models.Derogation, error) {
	return s.filter(func(d *models.Derogation) bool { return d.DoctorantID == doctorantID }), nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status models.Status) ([]*models.Derogation, error) {
	return s.filter(func(d *models.Derogation) bool { return d.Status == status }), nil
}

// ListExpirable returns approved records whose expiration date is before today.
func (s *InMemoryStore) ListExpirable(_ context.Context, today time.Time) ([]*models.Derogation, error) {
	return s.filter(func(d *models.Derogation) bool { return d.IsExpiredOn(today) }), nil
}

// Update replaces the stored record when its version equals expectedVersion,
// then bumps the version on d.
func (s *InMemoryStore) Update(_ context.Context, d *models.Derogation, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.derogation[d.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != expectedVersion {
		return sentinel.ErrConflict
	}
	d.Version = expectedVersion + 1
	s.derogation[d.ID] = d.Clone()
	return nil
}

func (s *InMemoryStore) filter(keep func(*models.Derogation) bool) []*models.Derogation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Derogation
	for _, d := range s.derogation {
		if keep(d) {
			out = append(out, d.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
