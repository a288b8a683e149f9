package matcher

import "github.com/arthur-debert/termlinks/pkg/types"

// spanIndex maps span keys to annotations, remembering insertion order
type spanIndex struct {
	order []string
	byKey map[string]*types.Annotation
}

func newSpanIndex() *spanIndex {
	return &spanIndex{byKey: make(map[string]*types.Annotation)}
}

func (s *spanIndex) get(span types.Span) *types.Annotation {
	return s.byKey[span.Key()]
}

func (s *spanIndex) add(ann *types.Annotation) {
	key := ann.Span.Key()
	s.order = append(s.order, key)
	s.byKey[key] = ann
}

func (s *spanIndex) len() int {
	return len(s.order)
}

func (s *spanIndex) annotations() []types.Annotation {
	out := make([]types.Annotation, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, *s.byKey[key])
	}
	return out
}
