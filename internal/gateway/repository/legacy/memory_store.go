package legacy

import (
	"context"
	"sort"
	"sync"

	"metabridge/internal/gateway/entity"
)

type memoryDataset struct {
	agents       []entity.LegacyAgent
	roles        []entity.LegacyRole
	affiliations []entity.LegacyAffiliation
	contacts     []entity.LegacyContactInfo
}

// MemoryStore is an in-process Store used for local runs from a fixture
// file and in tests. Rows keep insertion order within equal sort keys.
type MemoryStore struct {
	mu       sync.RWMutex
	datasets map[entity.DatasetID]*memoryDataset
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		datasets: make(map[entity.DatasetID]*memoryDataset),
	}
}

// AddDataset registers an empty dataset record.
func (s *MemoryStore) AddDataset(id entity.DatasetID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.datasetLocked(id)
}

func (s *MemoryStore) AddAgent(a entity.LegacyAgent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.datasetLocked(a.ResourceID)
	ds.agents = append(ds.agents, a)
}

func (s *MemoryStore) AddRole(r entity.LegacyRole) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.datasetLocked(r.ResourceID)
	ds.roles = append(ds.roles, r)
}

func (s *MemoryStore) AddAffiliation(a entity.LegacyAffiliation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.datasetLocked(a.ResourceID)
	ds.affiliations = append(ds.affiliations, a)
}

func (s *MemoryStore) AddContactInfo(c entity.LegacyContactInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ds := s.datasetLocked(c.ResourceID)
	ds.contacts = append(ds.contacts, c)
}

func (s *MemoryStore) datasetLocked(id entity.DatasetID) *memoryDataset {
	ds, ok := s.datasets[id]
	if !ok {
		ds = &memoryDataset{}
		s.datasets[id] = ds
	}
	return ds
}

func (s *MemoryStore) get(id entity.DatasetID) (*memoryDataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ds, ok := s.datasets[id]
	return ds, ok
}

func (s *MemoryStore) DatasetExists(_ context.Context, id entity.DatasetID) (bool, error) {
	_, ok := s.get(id)
	return ok, nil
}

func (s *MemoryStore) Agents(_ context.Context, id entity.DatasetID) ([]entity.LegacyAgent, error) {
	ds, ok := s.get(id)
	if !ok {
		return nil, nil
	}
	s.mu.RLock()
	out := append([]entity.LegacyAgent(nil), ds.agents...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (s *MemoryStore) Roles(_ context.Context, id entity.DatasetID) ([]entity.LegacyRole, error) {
	ds, ok := s.get(id)
	if !ok {
		return nil, nil
	}
	s.mu.RLock()
	out := append([]entity.LegacyRole(nil), ds.roles...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].AgentOrder < out[j].AgentOrder })
	return out, nil
}

func (s *MemoryStore) Affiliations(_ context.Context, id entity.DatasetID) ([]entity.LegacyAffiliation, error) {
	ds, ok := s.get(id)
	if !ok {
		return nil, nil
	}
	s.mu.RLock()
	out := append([]entity.LegacyAffiliation(nil), ds.affiliations...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AgentOrder != out[j].AgentOrder {
			return out[i].AgentOrder < out[j].AgentOrder
		}
		return out[i].SubOrder < out[j].SubOrder
	})
	return out, nil
}

func (s *MemoryStore) ContactInfo(_ context.Context, id entity.DatasetID) ([]entity.LegacyContactInfo, error) {
	ds, ok := s.get(id)
	if !ok {
		return nil, nil
	}
	s.mu.RLock()
	out := append([]entity.LegacyContactInfo(nil), ds.contacts...)
	s.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].AgentOrder < out[j].AgentOrder })
	return out, nil
}
