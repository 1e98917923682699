package explainer

import (
	"fmt"
	"strings"
)

// FormatResult renders a result for terminal display.
// Entries appear in document order with their line spans; failed entries
// render a placeholder so the output always covers every unit.
func FormatResult(r *ExplanationResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Language: %s\n", r.DetectedLanguage)
	fmt.Fprintf(&sb, "Status: %s\n", r.Status)
	fmt.Fprintf(&sb, "Complexity: %s (score %.2f, time %s, space %s)\n",
		r.Complexity.Label, r.AggregateComplexity,
		r.Complexity.TimeComplexity, r.Complexity.SpaceComplexity)

	if r.Improvements != nil && !r.Improvements.Empty() {
		sb.WriteString("\nImprovements:\n")
		if r.Improvements.TimeComplexity != "" {
			fmt.Fprintf(&sb, "  - %s\n", r.Improvements.TimeComplexity)
		}
		if r.Improvements.SpaceComplexity != "" {
			fmt.Fprintf(&sb, "  - %s\n", r.Improvements.SpaceComplexity)
		}
		for _, p := range r.Improvements.BestPractices {
			fmt.Fprintf(&sb, "  - %s\n", p)
		}
		for _, f := range r.Improvements.ErrorFixes {
			fmt.Fprintf(&sb, "  - %s\n", f)
		}
	}

	if len(r.Entries) == 0 {
		sb.WriteString("\nNothing to explain.\n")
		return sb.String()
	}

	for _, e := range r.Entries {
		span := fmt.Sprintf("%d", e.StartLine)
		if e.EndLine > e.StartLine {
			span = fmt.Sprintf("%d-%d", e.StartLine, e.EndLine)
		}

		text := e.Explanation
		if e.Status == StatusFailed {
			text = "(explanation unavailable)"
		}

		fmt.Fprintf(&sb, "\n%s [%s] %s\n", span, e.Kind, text)
		for _, s := range e.Suggestions {
			fmt.Fprintf(&sb, "  - %s\n", s)
		}
	}

	return sb.String()
}
