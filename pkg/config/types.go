package config

import (
	"time"

	"github.com/arthur-debert/termlinks/pkg/types"
)

// Config is the complete termlinks configuration
type Config struct {
	Engine  Engine  `koanf:"engine"`
	Browser Browser `koanf:"browser"`
	Linker  Linker  `koanf:"linker"`
}

// Engine tunes the match engine
type Engine struct {
	MatchTimeout time.Duration `koanf:"match_timeout"`
}

// Browser configures the external open capability
type Browser struct {
	Command string `koanf:"command"`
}

// Linker holds the link rules
type Linker struct {
	Rules []types.Rule `koanf:"rules"`

	// Legacy single-rule keys
	Pattern string               `koanf:"pattern"`
	Tooltip string               `koanf:"tooltip"`
	Links   []types.LinkTemplate `koanf:"links"`
}

// EffectiveRules returns linker.rules followed by the legacy single rule
// when linker.pattern is set
func (l Linker) EffectiveRules() []types.Rule {
	rules := make([]types.Rule, 0, len(l.Rules)+1)
	rules = append(rules, l.Rules...)
	if l.Pattern != "" {
		rules = append(rules, types.Rule{
			Pattern: l.Pattern,
			Tooltip: l.Tooltip,
			Links:   l.Links,
		})
	}
	return rules
}
