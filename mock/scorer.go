package mock

import explainer "github.com/The-ChandanKV/AI-Code-Explainer"

var _ explainer.Scorer = (*Scorer)(nil)

// Scorer is a mock implementation of explainer.Scorer.
type Scorer struct {
	ScoreFn     func(unit explainer.CodeUnit) float64
	AggregateFn func(scores []float64) float64
	ReportFn    func(text string) explainer.ComplexityReport
}

func (s *Scorer) Score(unit explainer.CodeUnit) float64 {
	return s.ScoreFn(unit)
}

func (s *Scorer) Aggregate(scores []float64) float64 {
	return s.AggregateFn(scores)
}

func (s *Scorer) Report(text string) explainer.ComplexityReport {
	return s.ReportFn(text)
}
