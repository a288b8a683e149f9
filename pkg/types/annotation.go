package types

import "fmt"

// Span identifies a matched region of a line. Start and Length are counted
// in runes.
type Span struct {
	Start  int `json:"start"`
	Length int `json:"length"`
}

// Key returns the identity key of the span, "{start}:{length}"
func (s Span) Key() string {
	return fmt.Sprintf("%d:%d", s.Start, s.Length)
}

// End returns the rune offset one past the span
func (s Span) End() int {
	return s.Start + s.Length
}

// Contains reports whether the rune column col falls inside the span
func (s Span) Contains(col int) bool {
	return col >= s.Start && col < s.End()
}

// Group is one capture group of a match. Matched is false for optional
// groups that did not participate in the match.
type Group struct {
	Value   string `json:"value"`
	Matched bool   `json:"matched"`
}

// Groups holds all capture groups of a match, index 0 being the whole match
type Groups []Group

// At returns the value of group i, or "" when i is out of range or the
// group did not participate
func (g Groups) At(i int) string {
	if i < 0 || i >= len(g) || !g[i].Matched {
		return ""
	}
	return g[i].Value
}

// Values returns the group values with unmatched groups as ""
func (g Groups) Values() []string {
	values := make([]string, len(g))
	for i := range g {
		values[i] = g.At(i)
	}
	return values
}

// NewGroups builds Groups from plain strings, all marked as matched
func NewGroups(values ...string) Groups {
	groups := make(Groups, len(values))
	for i, v := range values {
		groups[i] = Group{Value: v, Matched: true}
	}
	return groups
}

// Annotation is the link produced for one span of a line. It is handed to
// the host as is and comes back whole when the user activates the link.
type Annotation struct {
	Span

	// Tooltip is the hover text for the link
	Tooltip string `json:"tooltip"`

	// Links accumulates the destinations of every rule matching the span,
	// in rule order
	Links []LinkTemplate `json:"links"`

	// Groups are the capture groups of the first rule that claimed the span
	Groups Groups `json:"groups"`

	// Data is group 1 when the claiming pattern captures, else the whole match
	Data string `json:"data"`

	customTooltip bool
}

// HasCustomTooltip reports whether a rule's own tooltip was applied
func (a *Annotation) HasCustomTooltip() bool {
	return a.customTooltip
}

// SetCustomTooltip applies a rule-provided tooltip
func (a *Annotation) SetCustomTooltip(tooltip string) {
	a.Tooltip = tooltip
	a.customTooltip = true
}

// Text returns the whole matched substring
func (a Annotation) Text() string {
	return a.Groups.At(0)
}
