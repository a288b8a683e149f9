package render

import (
	"io"
	"sort"
	"strings"

	"github.com/arthur-debert/termlinks/pkg/resolve"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/muesli/termenv"
)

// HyperlinkRenderer re-emits each line with OSC 8 hyperlinks around the
// spans that have exactly one destination. Spans with several destinations
// need a choice and are left as plain text. Where spans overlap, the one
// starting first wins, then the longer one.
type HyperlinkRenderer struct{}

// RenderLine implements Renderer
func (HyperlinkRenderer) RenderLine(w io.Writer, line Line) error {
	_, err := io.WriteString(w, Hyperlinks(line.Text, line.Annotations)+"\n")
	return err
}

// Hyperlinks returns text with OSC 8 hyperlinks spliced in
func Hyperlinks(text string, annotations []types.Annotation) string {
	runes := []rune(text)
	spans := linkable(annotations, len(runes))

	var b strings.Builder
	cursor := 0
	for _, ann := range spans {
		b.WriteString(string(runes[cursor:ann.Start]))
		url := resolve.Resolve(ann.Links[0].URL, ann.Groups)
		b.WriteString(termenv.Hyperlink(url, string(runes[ann.Start:ann.End()])))
		cursor = ann.End()
	}
	b.WriteString(string(runes[cursor:]))
	return b.String()
}

// linkable returns the single-destination annotations that fit in a line of
// n runes, sorted and with overlaps removed
func linkable(annotations []types.Annotation, n int) []types.Annotation {
	var candidates []types.Annotation
	for _, ann := range annotations {
		if len(ann.Links) != 1 || ann.Length <= 0 || ann.Start < 0 || ann.End() > n {
			continue
		}
		candidates = append(candidates, ann)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Start != candidates[j].Start {
			return candidates[i].Start < candidates[j].Start
		}
		return candidates[i].Length > candidates[j].Length
	})

	kept := candidates[:0]
	end := 0
	for _, ann := range candidates {
		if ann.Start < end {
			continue
		}
		kept = append(kept, ann)
		end = ann.End()
	}
	return kept
}
