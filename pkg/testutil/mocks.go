package testutil

import (
	"context"
	"sync"

	"github.com/arthur-debert/termlinks/pkg/resolve"
)

// PromptCall records one call to MockPrompter.Choose
type PromptCall struct {
	Prompt  string
	Choices []resolve.Choice
}

// MockPrompter is a scripted resolve.Prompter. By default it picks Index 0.
type MockPrompter struct {
	Index  int
	Cancel bool
	Err    error

	Calls []PromptCall
}

// Choose records the call and returns the scripted answer
func (m *MockPrompter) Choose(_ context.Context, prompt string, choices []resolve.Choice) (int, bool, error) {
	m.Calls = append(m.Calls, PromptCall{Prompt: prompt, Choices: choices})
	if m.Err != nil {
		return 0, false, m.Err
	}
	if m.Cancel {
		return 0, false, nil
	}
	return m.Index, true, nil
}

// MockOpener is a resolve.Opener that records URIs instead of opening them
type MockOpener struct {
	Err error

	mu   sync.Mutex
	uris []string
}

// Open records uri and returns the scripted error
func (m *MockOpener) Open(_ context.Context, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uris = append(m.uris, uri)
	return m.Err
}

// Opened returns the URIs passed to Open so far
func (m *MockOpener) Opened() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.uris...)
}
