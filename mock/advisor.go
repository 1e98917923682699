package mock

import explainer "github.com/The-ChandanKV/AI-Code-Explainer"

var _ explainer.Advisor = (*Advisor)(nil)

// Advisor is a mock implementation of explainer.Advisor.
type Advisor struct {
	ImproveFn func(code string, lang explainer.Language) *explainer.ImprovementReport
}

func (a *Advisor) Improve(code string, lang explainer.Language) *explainer.ImprovementReport {
	return a.ImproveFn(code, lang)
}
