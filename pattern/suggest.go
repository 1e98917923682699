package pattern

import (
	"strings"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// maxLineLength is the readability threshold for the long-line suggestion.
const maxLineLength = 80

// Suggest returns improvement suggestions for a single source line.
// Suggestions are deterministic and ordered; an empty slice means the line
// looks fine.
func Suggest(line string, lang explainer.Language) []string {
	var suggestions []string
	trimmed := strings.TrimSpace(line)

	if len(line) > maxLineLength {
		suggestions = append(suggestions, "Consider breaking this long line into multiple lines for better readability.")
	}

	if strings.Contains(trimmed, "if ") && !strings.Contains(trimmed, "else") {
		suggestions = append(suggestions, "Consider adding an else clause to handle the alternative case.")
	}

	if lang == explainer.Python && strings.Contains(trimmed, "for ") && strings.Contains(trimmed, "range(") {
		suggestions = append(suggestions, "Consider using a list comprehension or built-in functions for better performance.")
	}

	if strings.Contains(trimmed, "print(") || strings.Contains(trimmed, "console.log") {
		suggestions = append(suggestions, "Consider using proper logging instead of print statements.")
	}

	if strings.HasPrefix(trimmed, "try") && !strings.Contains(trimmed, "except") && !strings.Contains(trimmed, "catch") {
		suggestions = append(suggestions, "Make sure exceptions raised here are handled.")
	}

	return suggestions
}
