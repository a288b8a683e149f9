package rules

import (
	"context"
	"reflect"
	"sync"

	"github.com/arthur-debert/termlinks/pkg/types"
)

// Store supplies link rules
type Store interface {
	// LoadRules returns the current rules in order
	LoadRules(ctx context.Context) ([]types.Rule, error)

	// OnRulesChanged registers fn to run after the rules change. The
	// returned function removes the subscription.
	OnRulesChanged(fn func()) (unsubscribe func())
}

// subscribers is a registry of change callbacks safe for concurrent use
type subscribers struct {
	mu   sync.Mutex
	next int
	fns  map[int]func()
}

func newSubscribers() *subscribers {
	return &subscribers{fns: make(map[int]func())}
}

func (s *subscribers) add(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.next
	s.next++
	s.fns[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.fns, id)
		})
	}
}

func (s *subscribers) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.fns))
	// fire in subscription order
	for id := 0; id < s.next; id++ {
		if fn, ok := s.fns[id]; ok {
			fns = append(fns, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// sameRules compares rule lists, treating nil and empty link lists alike
func sameRules(a, b []types.Rule) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return reflect.DeepEqual(copyRules(a), copyRules(b))
}

func copyRules(rules []types.Rule) []types.Rule {
	out := make([]types.Rule, len(rules))
	for i, r := range rules {
		out[i] = r
		out[i].Links = append([]types.LinkTemplate(nil), r.Links...)
	}
	return out
}
