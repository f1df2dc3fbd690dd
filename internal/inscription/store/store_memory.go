// Package store persists inscriptions with version-checked writes.
package store

import (
	"context"
	"sort"
	"sync"

	"doctorat/internal/inscription/models"
	id "doctorat/pkg/domain"
	"doctorat/pkg/platform/sentinel"
)

type campaignKey struct {
	doctorant id.DoctorantID
	campaign  id.CampaignID
}

// InMemoryStore keeps inscriptions keyed by id with a secondary
// (doctorant, campaign) index enforcing one registration per campaign.
type InMemoryStore struct {
	mu         sync.RWMutex
	records    map[id.InscriptionID]*models.Inscription
	byCampaign map[campaignKey]id.InscriptionID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		records:    make(map[id.InscriptionID]*models.Inscription),
		byCampaign: make(map[campaignKey]id.InscriptionID),
	}
}

func (s *InMemoryStore) Create(_ context.Context, ins *models.Inscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := campaignKey{ins.DoctorantID, ins.CampaignID}
	if _, ok := s.byCampaign[key]; ok {
		return sentinel.ErrAlreadyUsed
	}
	if _, ok := s.records[ins.ID]; ok {
		return sentinel.ErrAlreadyUsed
	}
	s.records[ins.ID] = ins.Clone()
	s.byCampaign[key] = ins.ID
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, inscriptionID id.InscriptionID) (*models.Inscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ins, ok := s.records[inscriptionID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return ins.Clone(), nil
}

func (s *InMemoryStore) ListByDoctorant(_ context.Context, doctorantID id.DoctorantID) ([]*models.Inscription, error) {
	return s.filter(func(ins *models.Inscription) bool { return ins.DoctorantID == doctorantID }), nil
}

func (s *InMemoryStore) ListByStatus(_ context.Context, status models.Status) ([]*models.Inscription, error) {
	return s.filter(func(ins *models.Inscription) bool { return ins.Status == status }), nil
}

// Update replaces the stored record when its version equals expectedVersion.
func (s *InMemoryStore) Update(_ context.Context, ins *models.Inscription, expectedVersion int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.records[ins.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != expectedVersion {
		return sentinel.ErrConflict
	}
	ins.Version = expectedVersion + 1
	s.records[ins.ID] = ins.Clone()
	return nil
}

func (s *InMemoryStore) filter(keep func(*models.Inscription) bool) []*models.Inscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Inscription
	for _, ins := range s.records {
		if keep(ins) {
			out = append(out, ins.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
