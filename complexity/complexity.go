// Package complexity computes structural complexity scores for code units.
// Scoring is a weighted count of lexical signals with a fixed weight table;
// nothing is learned and the same input always produces the same output.
package complexity

import (
	"regexp"
	"strings"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Ensure Analyzer implements explainer.Scorer.
var _ explainer.Scorer = (*Analyzer)(nil)

// Fixed weight table. Changing a weight changes every score, so these are
// part of the scoring contract.
const (
	baseStatement  = 1.0
	weightBranch   = 2.0
	weightLoop     = 3.0
	weightDepth    = 1.5
	weightOperator = 0.25
	weightCall     = 0.5
)

var (
	branchRe   = regexp.MustCompile(`\b(if|elif|else|switch|case|catch|except)\b|\?`)
	loopRe     = regexp.MustCompile(`\b(for|while|do)\b`)
	operatorRe = regexp.MustCompile(`==|!=|<=|>=|&&|\|\||[+\-*/%<>]`)
	callRe     = regexp.MustCompile(`\w\s*\(`)
)

// Analyzer scores structural complexity independent of any model.
type Analyzer struct{}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Score returns the weighted structural complexity of one unit.
// Commentary units score zero.
func (a *Analyzer) Score(unit explainer.CodeUnit) float64 {
	if unit.Kind.Commentary() {
		return 0
	}

	text := unit.Text
	branches := len(branchRe.FindAllString(text, -1))
	loops := len(loopRe.FindAllString(text, -1))
	operators := len(operatorRe.FindAllString(text, -1))
	calls := len(callRe.FindAllString(text, -1))

	return baseStatement +
		float64(branches)*weightBranch +
		float64(loops)*weightLoop +
		float64(unit.Depth)*weightDepth +
		float64(operators)*weightOperator +
		float64(calls)*weightCall
}

// Aggregate sums per-unit scores. Summation is order-independent, so
// re-running on the same unit set is reproducible bit-for-bit.
func (a *Analyzer) Aggregate(scores []float64) float64 {
	var total float64
	for _, s := range scores {
		total += s
	}
	return total
}

// Report classifies the snippet and estimates asymptotic behavior from
// loop and conditional counts.
func (a *Analyzer) Report(text string) explainer.ComplexityReport {
	loops := len(loopRe.FindAllString(text, -1))
	conditionals := len(branchRe.FindAllString(text, -1))

	label := "Low"
	switch {
	case loops > 2 || conditionals > 3:
		label = "High"
	case loops > 0 || conditionals > 1:
		label = "Medium"
	}

	timeComplexity := "O(1)"
	if loops > 0 {
		timeComplexity = "O(n)"
	}

	spaceComplexity := "O(1)"
	if strings.Contains(text, "[]") || strings.Contains(text, "{}") {
		spaceComplexity = "O(n)"
	}

	return explainer.ComplexityReport{
		Label:           label,
		TimeComplexity:  timeComplexity,
		SpaceComplexity: spaceComplexity,
	}
}
