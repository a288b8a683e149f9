package render

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/termlinks/pkg/resolve"
	"github.com/arthur-debert/termlinks/pkg/types"
)

// JSONAnnotation is an annotation with its destinations resolved. It
// decodes back into a types.Annotation, which ignores URLs.
type JSONAnnotation struct {
	types.Annotation
	URLs []string `json:"urls"`
}

// JSONLine is the object written for each line of input
type JSONLine struct {
	Source      string           `json:"source"`
	Line        int              `json:"line"`
	Text        string           `json:"text"`
	Annotations []JSONAnnotation `json:"annotations"`
}

// JSONRenderer writes one JSON object per line, including lines without
// annotations so that consumers can keep count
type JSONRenderer struct{}

// RenderLine implements Renderer
func (JSONRenderer) RenderLine(w io.Writer, line Line) error {
	out := JSONLine{
		Source:      line.Source,
		Line:        line.Number,
		Text:        line.Text,
		Annotations: make([]JSONAnnotation, 0, len(line.Annotations)),
	}
	for _, ann := range line.Annotations {
		if ann.Links == nil {
			ann.Links = []types.LinkTemplate{}
		}
		out.Annotations = append(out.Annotations, JSONAnnotation{
			Annotation: ann,
			URLs:       resolve.ResolveAll(ann),
		})
	}
	return json.NewEncoder(w).Encode(out)
}
