package rules

import (
	"time"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/arthur-debert/termlinks/pkg/matcher"
	"github.com/arthur-debert/termlinks/pkg/types"
)

// Issue is a problem found with one rule
type Issue struct {
	Index   int
	Pattern string
	Err     error
}

// Validate compiles every rule's pattern and returns the rules that would be
// skipped while matching, in rule order. A rule without links is valid.
func Validate(rules []types.Rule, timeout time.Duration) []Issue {
	var issues []Issue
	for i, r := range rules {
		if r.Pattern == "" {
			issues = append(issues, Issue{
				Index: i,
				Err:   errors.New(errors.ErrInvalidInput, "pattern is empty"),
			})
			continue
		}
		if _, err := matcher.Compile(r.Pattern, timeout); err != nil {
			issues = append(issues, Issue{Index: i, Pattern: r.Pattern, Err: err})
		}
	}
	return issues
}
