package types

// LinkTemplate is a named destination. URL may reference capture groups of
// the match with $0, $1, ... placeholders.
type LinkTemplate struct {
	Label string `json:"label" koanf:"label" toml:"label" yaml:"label"`
	URL   string `json:"url" koanf:"url" toml:"url" yaml:"url"`
}

// Rule maps a regular expression to an ordered list of destinations.
type Rule struct {
	// Pattern is an ECMAScript-flavoured regular expression source
	Pattern string `json:"pattern" koanf:"pattern" toml:"pattern" yaml:"pattern"`

	// Tooltip overrides the tooltip built from link labels. Empty means unset.
	Tooltip string `json:"tooltip,omitempty" koanf:"tooltip" toml:"tooltip,omitempty" yaml:"tooltip,omitempty"`

	// Links are the destinations in display order. The first one is used
	// directly when it is the only one.
	Links []LinkTemplate `json:"links" koanf:"links" toml:"links" yaml:"links"`
}

// HasTooltip reports whether the rule carries a custom tooltip
func (r Rule) HasTooltip() bool {
	return r.Tooltip != ""
}

// Labels returns the labels of the rule's links in order
func (r Rule) Labels() []string {
	return LinkLabels(r.Links)
}

// RuleSet is an ordered list of rules as read from configuration
type RuleSet []Rule

// LinkLabels returns the labels of links in order
func LinkLabels(links []LinkTemplate) []string {
	labels := make([]string, 0, len(links))
	for _, l := range links {
		labels = append(labels, l.Label)
	}
	return labels
}
