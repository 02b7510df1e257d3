package memory

import (
	"context"
	"slices"
	"sync"

	audit "sotcredit/pkg/platform/audit"
)

// InMemoryStore keeps audit events in arrival order. It backs the "memory"
// audit sink for local runs and the publisher tests.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []audit.Event
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListBySubject returns every event for one customer account.
func (s *InMemoryStore) ListBySubject(_ context.Context, subject string) ([]audit.Event, error) {
	return s.filter(func(e audit.Event) bool { return e.Subject == subject }), nil
}

// ListByAdjudication returns the events of a single adjudication run.
func (s *InMemoryStore) ListByAdjudication(_ context.Context, adjudicationID string) ([]audit.Event, error) {
	return s.filter(func(e audit.Event) bool { return e.AdjudicationID == adjudicationID }), nil
}

// ListRecent returns up to limit events, most recent last.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	start := max(len(s.events)-limit, 0)
	return slices.Clone(s.events[start:]), nil
}

func (s *InMemoryStore) filter(keep func(audit.Event) bool) []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []audit.Event{}
	for _, e := range s.events {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}
