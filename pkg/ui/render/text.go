package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/termlinks/pkg/resolve"
	"github.com/arthur-debert/termlinks/pkg/types"
	"github.com/arthur-debert/termlinks/pkg/ui/styles"
)

// TextRenderer lists annotations as
//
//	source:line:col  ABC-123  Jira / GitHub
//	  Jira    https://x.atlassian.net/browse/ABC-123
//
// Columns are 1-based rune offsets. Lines without annotations print nothing.
type TextRenderer struct {
	Color bool
}

// RenderLine implements Renderer
func (r TextRenderer) RenderLine(w io.Writer, line Line) error {
	var b strings.Builder
	for _, ann := range line.Annotations {
		pos := fmt.Sprintf("%s:%d:%d", line.Source, line.Number, ann.Start+1)
		fmt.Fprintf(&b, "%s  %s  %s\n",
			r.style("Span", pos),
			r.style("Link", ann.Text()),
			r.style("Tooltip", ann.Tooltip))

		urls := resolve.ResolveAll(ann)
		width := labelWidth(ann.Links)
		for i, l := range ann.Links {
			label := l.Label + strings.Repeat(" ", width-len([]rune(l.Label)))
			fmt.Fprintf(&b, "  %s  %s\n", r.style("Label", label), r.style("URL", urls[i]))
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func (r TextRenderer) style(name, text string) string {
	if !r.Color {
		return text
	}
	return styles.Render(name, text)
}

func labelWidth(links []types.LinkTemplate) int {
	width := 0
	for _, l := range links {
		if n := len([]rune(l.Label)); n > width {
			width = n
		}
	}
	return width
}
