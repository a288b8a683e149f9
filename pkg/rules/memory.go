package rules

import (
	"context"
	"sync"

	"github.com/arthur-debert/termlinks/pkg/types"
)

// MemoryStore is a Store backed by an in-memory rule list
type MemoryStore struct {
	mu    sync.RWMutex
	rules []types.Rule
	subs  *subscribers
}

// NewMemoryStore creates a MemoryStore holding a copy of rules
func NewMemoryStore(rules ...types.Rule) *MemoryStore {
	return &MemoryStore{
		rules: copyRules(rules),
		subs:  newSubscribers(),
	}
}

// LoadRules returns a copy of the current rules
func (s *MemoryStore) LoadRules(_ context.Context) ([]types.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyRules(s.rules), nil
}

// OnRulesChanged implements Store
func (s *MemoryStore) OnRulesChanged(fn func()) func() {
	return s.subs.add(fn)
}

// Set replaces the rules, notifying subscribers when they differ
func (s *MemoryStore) Set(rules []types.Rule) {
	s.mu.Lock()
	changed := !sameRules(s.rules, rules)
	s.rules = copyRules(rules)
	s.mu.Unlock()

	if changed {
		s.subs.notify()
	}
}
