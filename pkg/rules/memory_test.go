package rules_test

import (
	"context"
	"testing"

	"github.com/arthur-debert/termlinks/pkg/rules"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ticketRule = types.Rule{
	Pattern: `([A-Z][A-Z0-9]+-\d+)`,
	Links: []types.LinkTemplate{
		{Label: "Jira", URL: "https://x.atlassian.net/browse/$1"},
	},
}

func TestMemoryStore_LoadReturnsCopy(t *testing.T) {
	store := rules.NewMemoryStore(ticketRule)

	loaded, err := store.LoadRules(context.Background())
	require.NoError(t, err)
	require.Len(t, loaded, 1)

	loaded[0].Links[0].URL = "changed"

	again, err := store.LoadRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://x.atlassian.net/browse/$1", again[0].Links[0].URL)
}

func TestMemoryStore_Empty(t *testing.T) {
	store := rules.NewMemoryStore()

	loaded, err := store.LoadRules(context.Background())
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestMemoryStore_NotifiesOnChange(t *testing.T) {
	store := rules.NewMemoryStore(ticketRule)

	var calls []string
	store.OnRulesChanged(func() { calls = append(calls, "first") })
	store.OnRulesChanged(func() { calls = append(calls, "second") })

	store.Set([]types.Rule{ticketRule})
	assert.Empty(t, calls, "identical rules must not notify")

	other := ticketRule
	other.Tooltip = "Open ticket"
	store.Set([]types.Rule{other})
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestMemoryStore_EmptyLinksEqualNil(t *testing.T) {
	store := rules.NewMemoryStore(types.Rule{Pattern: "x"})

	notified := false
	store.OnRulesChanged(func() { notified = true })
	store.Set([]types.Rule{{Pattern: "x", Links: []types.LinkTemplate{}}})

	assert.False(t, notified)
}

func TestMemoryStore_Unsubscribe(t *testing.T) {
	store := rules.NewMemoryStore()

	count := 0
	unsubscribe := store.OnRulesChanged(func() { count++ })

	store.Set([]types.Rule{ticketRule})
	unsubscribe()
	unsubscribe()
	store.Set(nil)

	assert.Equal(t, 1, count)
}
