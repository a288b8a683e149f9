// Package matcher finds link annotations in a line of text.
//
// Every rule's pattern is compiled fresh on each call and run as a global
// search over the line. Matches from different rules that cover the exact
// same span (same start, same length) become a single annotation whose links
// are the concatenation of the rules' links in rule order. Overlapping but
// different spans stay separate annotations.
//
// # Pattern dialect
//
// Patterns use the ECMAScript mode of github.com/dlclark/regexp2, which
// accepts lookahead, lookbehind, lazy quantifiers, backreferences and named
// groups. Flags such as (?i) are accepted as inline groups. Sticky and
// unicode-sets flags have no equivalent.
//
// Capture groups are numbered left to right by their opening parenthesis,
// named groups included, so $1 in (?<proj>[A-Z]+)-(\d+) is the project.
// regexp2 itself numbers named groups after unnamed ones; the engine reorders
// them before building annotations.
//
// # Offsets
//
// Span offsets and lengths count runes, not bytes.
//
// # Tooltips
//
// While no contributing rule has a tooltip of its own, the annotation's
// tooltip is the labels of all accumulated links joined with " / ",
// recomputed on every merge. The first rule tooltip to arrive replaces it
// and is never replaced afterwards.
package matcher
