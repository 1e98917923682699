package pattern

import (
	"regexp"
	"strings"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Ensure Advisor implements explainer.Advisor.
var _ explainer.Advisor = (*Advisor)(nil)

// Advisor produces snippet-level improvement advice from lexical shape
// checks, the same way the rule table produces explanations. Advice is
// deterministic for equal input.
type Advisor struct{}

// NewAdvisor creates a new Advisor.
func NewAdvisor() *Advisor {
	return &Advisor{}
}

var (
	rangeLoopRe = regexp.MustCompile(`\bfor\b[^\n]*\brange\s*\(`)
	literalRe   = regexp.MustCompile(`\[\]|\{\}`)
	outputRe    = regexp.MustCompile(`\bprint\s*\(|console\.\w+\s*\(|System\.out\.|std::cout|\bcout\b`)
	tryRe       = regexp.MustCompile(`\btry\b`)
	handlerRe   = regexp.MustCompile(`\bexcept\b|\bcatch\b`)
	inputRe     = regexp.MustCompile(`\binput\s*\(\s*\)`)
)

// Improve scans the whole snippet and reports advice in four categories:
// complexity advice for time and space, best practices, and error fixes.
func (a *Advisor) Improve(code string, lang explainer.Language) *explainer.ImprovementReport {
	report := &explainer.ImprovementReport{}

	if rangeLoopRe.MatchString(code) {
		report.TimeComplexity = "Consider using list comprehension or built-in functions for better performance."
	}
	if literalRe.MatchString(code) {
		report.SpaceComplexity = "Consider using generators or iterators to reduce memory usage."
	}

	if !hasComment(code, lang) {
		report.BestPractices = append(report.BestPractices, "Add comments to explain complex logic.")
	}
	if outputRe.MatchString(code) {
		report.BestPractices = append(report.BestPractices, "Consider using proper logging instead of print statements.")
	}

	if tryRe.MatchString(code) && !handlerRe.MatchString(code) {
		report.ErrorFixes = append(report.ErrorFixes, "Add proper exception handling.")
	}
	if inputRe.MatchString(code) {
		report.ErrorFixes = append(report.ErrorFixes, "Add input validation to prevent unexpected errors.")
	}

	return report
}

// hasComment reports whether any line is a comment under the language's
// markers.
func hasComment(code string, lang explainer.Language) bool {
	for _, line := range strings.Split(code, "\n") {
		trimmed := strings.TrimSpace(line)
		switch lang {
		case explainer.JavaScript, explainer.Java, explainer.CPP:
			if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") {
				return true
			}
		default:
			if strings.HasPrefix(trimmed, "#") {
				return true
			}
		}
	}
	return false
}
