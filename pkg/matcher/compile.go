package matcher

import (
	"time"

	"github.com/arthur-debert/termlinks/pkg/errors"
	"github.com/dlclark/regexp2"
)

// Compile compiles pattern in the dialect used for link rules. A positive
// timeout bounds each individual search.
func Compile(pattern string, timeout time.Duration) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid pattern %q", pattern).
			WithDetail("pattern", pattern)
	}
	if timeout > 0 {
		re.MatchTimeout = timeout
	}
	return re, nil
}

// groupOrder lists the regexp2 group numbers of re in the order their
// opening parentheses appear in pattern, group 0 first. regexp2 numbers named
// groups after all unnamed ones, while link templates count groups left to
// right. If the pattern cannot be walked reliably the regexp2 order is kept.
func groupOrder(pattern string, re *regexp2.Regexp) []int {
	numbers := re.GetGroupNumbers()

	order := []int{0}
	seen := map[int]bool{0: true}
	add := func(n int) {
		if n > 0 && !seen[n] {
			seen[n] = true
			order = append(order, n)
		}
	}

	src := []rune(pattern)
	unnamed, inClass := 0, false
	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(' && i+1 < len(src) && src[i+1] == '?':
			if name, ok := groupName(src[i+2:]); ok {
				add(re.GroupNumberFromName(name))
			}
		case c == '(':
			unnamed++
			add(unnamed)
		}
	}

	if len(order) != len(numbers) {
		return numbers
	}
	return order
}

// groupName reads the name of a (?<name>...), (?'name'...) or (?P<name>...)
// group from the text following "(?"
func groupName(rest []rune) (string, bool) {
	if len(rest) > 0 && rest[0] == 'P' {
		rest = rest[1:]
	}
	if len(rest) < 2 {
		return "", false
	}

	var end rune
	switch rest[0] {
	case '<':
		if rest[1] == '=' || rest[1] == '!' {
			return "", false
		}
		end = '>'
	case '\'':
		end = '\''
	default:
		return "", false
	}

	for i := 1; i < len(rest); i++ {
		if rest[i] == end {
			return string(rest[1:i]), i > 1
		}
	}
	return "", false
}
