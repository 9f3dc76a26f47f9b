package entitlement

import (
	"context"
	"sync"

	"github.com/d60-Lab/quickai/internal/model"
)

// MemoryStore is an in-process Store for tests and local development.
type MemoryStore struct {
	mu    sync.Mutex
	plans map[string]string
	usage map[string]int
	// Fail makes every call return ErrUnavailable, simulating an outage.
	Fail bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{plans: make(map[string]string), usage: make(map[string]int)}
}

// SetPlan seeds a user's plan tag.
func (s *MemoryStore) SetPlan(userID, plan string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[userID] = plan
}

func (s *MemoryStore) Get(_ context.Context, userID string) (model.Entitlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return model.Entitlement{}, ErrUnavailable
	}
	ent := model.Entitlement{UserID: userID, Plan: model.PlanFree}
	if p, ok := s.plans[userID]; ok {
		ent.Plan = p
	}
	if u, ok := s.usage[userID]; ok {
		ent.FreeUsage = u
		ent.UsageKnown = true
	}
	return ent, nil
}

func (s *MemoryStore) SetFreeUsage(_ context.Context, userID string, usage int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail {
		return ErrUnavailable
	}
	s.usage[userID] = usage
	return nil
}

// Usage reads the stored counter (test helper).
func (s *MemoryStore) Usage(userID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.usage[userID]
	return u, ok
}
