package mock

import explainer "github.com/The-ChandanKV/AI-Code-Explainer"

var _ explainer.Segmenter = (*Segmenter)(nil)

// Segmenter is a mock implementation of explainer.Segmenter.
type Segmenter struct {
	SegmentFn func(text string, lang explainer.Language) []explainer.CodeUnit
}

func (s *Segmenter) Segment(text string, lang explainer.Language) []explainer.CodeUnit {
	return s.SegmentFn(text, lang)
}
