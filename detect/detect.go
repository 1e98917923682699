// Package detect implements heuristic programming language detection.
// Detection is ordered and lexical: each supported language has a set of
// weighted token signatures, and the first language whose signals clear a
// fixed threshold wins. Explicit user intent always wins over heuristics.
package detect

import (
	"regexp"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Ensure Detector implements explainer.LanguageDetector.
var _ explainer.LanguageDetector = (*Detector)(nil)

// matchThreshold is the minimum signature score for a heuristic match.
const matchThreshold = 2

// signature is a weighted lexical signal for one language. Decisive
// signatures settle detection on their own.
type signature struct {
	re       *regexp.Regexp
	weight   int
	decisive bool
}

// languageSignatures pairs a language with its ordered signature list.
type languageSignatures struct {
	lang explainer.Language
	sigs []signature
}

// signatures are checked in declaration order; the first language that
// matches wins, so more distinctive languages come first.
var signatures = []languageSignatures{
	{
		lang: explainer.Python,
		sigs: []signature{
			{re: regexp.MustCompile(`(?m)^\s*def\s+\w+\s*\(.*\)\s*:`), weight: 2, decisive: true},
			{re: regexp.MustCompile(`(?m)^\s*(elif|except)\b`), weight: 2, decisive: true},
			{re: regexp.MustCompile(`(?m)^\s*(from\s+\w[\w.]*\s+)?import\s+\w`), weight: 1},
			{re: regexp.MustCompile(`(?m)^\s*(if|for|while|class|with|try)\b[^{;]*:\s*(#.*)?$`), weight: 2},
			{re: regexp.MustCompile(`\bself\.`), weight: 1},
			{re: regexp.MustCompile(`(?m)^\s*#`), weight: 1},
			{re: regexp.MustCompile(`\bprint\s*\(`), weight: 1},
		},
	},
	{
		lang: explainer.CPP,
		sigs: []signature{
			{re: regexp.MustCompile(`(?m)^\s*#include\s*[<"]`), weight: 2, decisive: true},
			{re: regexp.MustCompile(`\bstd::`), weight: 2, decisive: true},
			{re: regexp.MustCompile(`\b(cout|cin|endl)\b`), weight: 1},
			{re: regexp.MustCompile(`\btemplate\s*<`), weight: 2},
			{re: regexp.MustCompile(`\b(int|void|char|double|bool)\s+\w+\s*\(`), weight: 1},
			{re: regexp.MustCompile(`->\w+`), weight: 1},
		},
	},
	{
		lang: explainer.Java,
		sigs: []signature{
			{re: regexp.MustCompile(`\bpublic\s+static\s+void\s+main\b`), weight: 2, decisive: true},
			{re: regexp.MustCompile(`\bSystem\.out\.print`), weight: 2, decisive: true},
			{re: regexp.MustCompile(`\b(public|private|protected)\s+(class|interface|enum)\b`), weight: 2},
			{re: regexp.MustCompile(`(?m)^\s*package\s+[\w.]+;`), weight: 2},
			{re: regexp.MustCompile(`(?m)^\s*import\s+java[\w.]*;`), weight: 2},
			{re: regexp.MustCompile(`\bnew\s+\w+\s*\(`), weight: 1},
			{re: regexp.MustCompile(`@(Override|Test|Deprecated)\b`), weight: 1},
		},
	},
	{
		lang: explainer.JavaScript,
		sigs: []signature{
			{re: regexp.MustCompile(`\bconsole\.(log|error|warn)\s*\(`), weight: 2, decisive: true},
			{re: regexp.MustCompile(`\bfunction\s*\w*\s*\(`), weight: 2},
			{re: regexp.MustCompile(`=>`), weight: 1},
			{re: regexp.MustCompile(`\b(const|let)\s+\w+\s*=`), weight: 1},
			{re: regexp.MustCompile(`===|!==`), weight: 1},
			{re: regexp.MustCompile(`\b(document|window|require|module\.exports)\b`), weight: 1},
		},
	},
}

// Detector resolves a snippet's language from a declaration or heuristics.
type Detector struct{}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns the language to use for segmentation. A supported declared
// language is returned unchanged. Otherwise ordered signature checks run
// over the supported set and the first match wins; Unknown is returned when
// nothing matches. Detect never fails.
func (d *Detector) Detect(text string, declared explainer.Language) explainer.Language {
	if declared.Supported() {
		return declared
	}

	for _, ls := range signatures {
		score := 0
		for _, sig := range ls.sigs {
			if !sig.re.MatchString(text) {
				continue
			}
			if sig.decisive {
				return ls.lang
			}
			score += sig.weight
		}
		if score >= matchThreshold {
			return ls.lang
		}
	}

	return explainer.Unknown
}
