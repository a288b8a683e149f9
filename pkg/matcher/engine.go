package matcher

import (
	"strings"
	"time"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/logging"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
)

const (
	// TooltipSeparator joins link labels in generated tooltips
	TooltipSeparator = " / "

	// DefaultTooltip is used when a match has no labels to show
	DefaultTooltip = "Open link"
)

// Warning describes a rule that could not be applied to a line
type Warning struct {
	RuleIndex int
	Pattern   string
	Err       error
}

// WarnFunc receives recoverable per-rule problems
type WarnFunc func(Warning)

// Engine computes link annotations for lines of text
type Engine struct {
	logger  zerolog.Logger
	warn    WarnFunc
	timeout time.Duration
}

// Option configures an Engine
type Option func(*Engine)

// WithWarnFunc replaces the default warning sink, which logs through zerolog
func WithWarnFunc(fn WarnFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.warn = fn
		}
	}
}

// WithMatchTimeout bounds every regex search. Zero disables the bound.
func WithMatchTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.timeout = d
	}
}

// New creates an Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: logging.GetLogger("matcher.engine"),
	}
	e.warn = e.logWarning
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) logWarning(w Warning) {
	e.logger.Warn().
		Err(w.Err).
		Int("rule", w.RuleIndex).
		Str("pattern", w.Pattern).
		Msg("Skipping link rule")
}

// FindLinks returns the annotations for line in first-discovered order. It
// does no I/O and never fails: rules that cannot be applied are reported to
// the warning sink and skipped.
func (e *Engine) FindLinks(line string, rules []types.Rule) []types.Annotation {
	text := []rune(line)
	found := newSpanIndex()

	for i, rule := range rules {
		re, err := Compile(rule.Pattern, e.timeout)
		if err != nil {
			e.warn(Warning{RuleIndex: i, Pattern: rule.Pattern, Err: err})
			continue
		}

		if err := e.scan(re, groupOrder(rule.Pattern, re), text, func(span types.Span, groups types.Groups, data string) {
			if ann := found.get(span); ann != nil {
				mergeInto(ann, rule)
				return
			}
			found.add(newAnnotation(span, groups, data, rule))
		}); err != nil {
			e.warn(Warning{RuleIndex: i, Pattern: rule.Pattern, Err: err})
		}
	}

	e.logger.Trace().
		Int("rules", len(rules)).
		Int("annotations", found.len()).
		Msg("Computed links for line")

	return found.annotations()
}

// scan runs re over text from the start, calling emit for every non-empty
// match with its groups listed in order. An empty match advances the cursor
// by one rune so the search always terminates; zero-width spans are not
// clickable and produce nothing.
func (e *Engine) scan(re *regexp2.Regexp, order []int, text []rune, emit func(types.Span, types.Groups, string)) error {
	hasCaptures := len(order) > 1

	for cursor := 0; cursor <= len(text); {
		m, err := re.FindRunesMatchStartingAt(text, cursor)
		if err != nil {
			return errors.Wrap(err, errors.ErrPatternTimeout, "pattern search aborted")
		}
		if m == nil {
			return nil
		}

		if m.Length == 0 {
			cursor = m.Index + 1
			continue
		}
		cursor = m.Index + m.Length

		groups := groupsOf(m, order)
		data := groups.At(0)
		if hasCaptures && len(groups) > 1 && groups[1].Matched {
			data = groups[1].Value
		}

		emit(types.Span{Start: m.Index, Length: m.Length}, groups, data)
	}
	return nil
}

func groupsOf(m *regexp2.Match, order []int) types.Groups {
	groups := make(types.Groups, len(order))
	for i, n := range order {
		g := m.GroupByNumber(n)
		if g == nil {
			continue
		}
		groups[i] = types.Group{
			Value:   g.String(),
			Matched: len(g.Captures) > 0,
		}
	}
	return groups
}

func newAnnotation(span types.Span, groups types.Groups, data string, rule types.Rule) *types.Annotation {
	ann := &types.Annotation{
		Span:   span,
		Links:  append(make([]types.LinkTemplate, 0, len(rule.Links)), rule.Links...),
		Groups: groups,
		Data:   data,
	}
	if rule.HasTooltip() {
		ann.SetCustomTooltip(rule.Tooltip)
	} else {
		ann.Tooltip = AutoTooltip(ann.Links)
	}
	return ann
}

// mergeInto adds rule's links to an annotation already claimed by an
// earlier rule. The claiming rule's groups and data are kept.
func mergeInto(ann *types.Annotation, rule types.Rule) {
	ann.Links = append(ann.Links, rule.Links...)

	switch {
	case ann.HasCustomTooltip():
	case rule.HasTooltip():
		ann.SetCustomTooltip(rule.Tooltip)
	default:
		ann.Tooltip = AutoTooltip(ann.Links)
	}
}

// AutoTooltip joins the non-empty labels of links, falling back to
// DefaultTooltip when there are none
func AutoTooltip(links []types.LinkTemplate) string {
	labels := make([]string, 0, len(links))
	for _, l := range links {
		if l.Label != "" {
			labels = append(labels, l.Label)
		}
	}
	if len(labels) == 0 {
		return DefaultTooltip
	}
	return strings.Join(labels, TooltipSeparator)
}
