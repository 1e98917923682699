package mock

import explainer "github.com/The-ChandanKV/AI-Code-Explainer"

var _ explainer.LanguageDetector = (*LanguageDetector)(nil)

// LanguageDetector is a mock implementation of explainer.LanguageDetector.
type LanguageDetector struct {
	DetectFn func(text string, declared explainer.Language) explainer.Language
}

func (d *LanguageDetector) Detect(text string, declared explainer.Language) explainer.Language {
	return d.DetectFn(text, declared)
}
