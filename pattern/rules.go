package pattern

import explainer "github.com/The-ChandanKV/AI-Code-Explainer"

// RuleSet is the serialized model asset: an ordered list of shape rules
// plus the model's input limit. Rules are tried in order and the first
// match wins, so specific shapes come before generic ones.
type RuleSet struct {
	Version        int    `json:"version"`
	MaxInputTokens int    `json:"maxInputTokens"`
	Rules          []Rule `json:"rules"`
}

// Rule maps a source-line shape onto an explanation template.
type Rule struct {
	Name string `json:"name"`

	// Languages restricts the rule; empty means all languages.
	Languages []explainer.Language `json:"languages,omitempty"`

	// Pattern is an RE2 expression applied to the unit's first significant
	// line. Capture groups are available to the template as $1, $2, ...
	Pattern string `json:"pattern"`

	// Template is the rendered explanation text.
	Template string `json:"template"`

	// Confidence reflects the rule's specificity, in [0, 1].
	Confidence float64 `json:"confidence"`
}

// DefaultRuleSet returns the built-in rule set shipped with the binary.
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		Version:        1,
		MaxInputTokens: 512,
		Rules: []Rule{
			{
				Name:       "python-function",
				Languages:  []explainer.Language{explainer.Python},
				Pattern:    `^(?:async\s+)?def\s+(\w+)`,
				Template:   "Defines a function named $1.",
				Confidence: 0.9,
			},
			{
				Name:       "js-function",
				Languages:  []explainer.Language{explainer.JavaScript},
				Pattern:    `^(?:async\s+)?function\s+(\w+)`,
				Template:   "Defines a function named $1.",
				Confidence: 0.9,
			},
			{
				Name:       "arrow-function",
				Languages:  []explainer.Language{explainer.JavaScript},
				Pattern:    `^(?:const|let|var)\s+(\w+)\s*=.*=>`,
				Template:   "Defines an arrow function named $1.",
				Confidence: 0.85,
			},
			{
				Name:       "class-definition",
				Pattern:    `^(?:public\s+|private\s+|abstract\s+|final\s+)*class\s+(\w+)`,
				Template:   "Defines a class named $1.",
				Confidence: 0.9,
			},
			{
				Name:       "cpp-include",
				Languages:  []explainer.Language{explainer.CPP},
				Pattern:    `^#include\s*[<"]([^>"]+)[>"]`,
				Template:   "Includes the $1 header.",
				Confidence: 0.9,
			},
			{
				Name:       "import",
				Pattern:    `^(?:from\s+[\w.]+\s+)?import\s+`,
				Template:   "Imports a module or specific components from a module.",
				Confidence: 0.85,
			},
			{
				Name:       "method-definition",
				Languages:  []explainer.Language{explainer.Java, explainer.CPP},
				Pattern:    `^(?:public\s+|private\s+|protected\s+|static\s+|final\s+)*[\w<>\[\]:]+\s+(\w+)\s*\([^;]*$`,
				Template:   "Defines a function named $1.",
				Confidence: 0.8,
			},
			{
				Name:       "conditional",
				Pattern:    `^(?:}\s*)?(?:else\s+)?if\b|^elif\b`,
				Template:   "Checks a condition and branches on the outcome.",
				Confidence: 0.85,
			},
			{
				Name:       "else-branch",
				Pattern:    `^(?:}\s*)?else\b`,
				Template:   "Handles the case where the preceding condition was not met.",
				Confidence: 0.85,
			},
			{
				Name:       "for-loop",
				Pattern:    `^for\b`,
				Template:   "Starts a loop that iterates over a sequence.",
				Confidence: 0.85,
			},
			{
				Name:       "while-loop",
				Pattern:    `^(?:}\s*)?(?:while|do)\b`,
				Template:   "Starts a loop that continues while a condition holds.",
				Confidence: 0.85,
			},
			{
				Name:       "switch",
				Pattern:    `^switch\b|^match\b`,
				Template:   "Selects a branch based on the value of an expression.",
				Confidence: 0.8,
			},
			{
				Name:       "case-label",
				Pattern:    `^(?:case\b|default\s*:)`,
				Template:   "Marks one branch of the enclosing switch.",
				Confidence: 0.8,
			},
			{
				Name:       "exception-handling",
				Pattern:    `^(?:try\b|except\b|catch\b|finally\b)`,
				Template:   "Participates in exception handling for the enclosed code.",
				Confidence: 0.8,
			},
			{
				Name:       "return",
				Pattern:    `^return\b`,
				Template:   "Returns a value from the enclosing function.",
				Confidence: 0.85,
			},
			{
				Name:       "output",
				Pattern:    `^(?:print\s*\(|console\.\w+\s*\(|System\.out\.\w+|std::cout|cout\b)`,
				Template:   "Outputs text to the console.",
				Confidence: 0.85,
			},
			{
				Name:       "block-close",
				Pattern:    `^[}\])]+;?$`,
				Template:   "Closes the enclosing block.",
				Confidence: 0.7,
			},
			{
				Name:       "assignment",
				Pattern:    `^[\w.\[\]]+\s*(?:[-+*/%]|<<|>>)?=[^=]`,
				Template:   "Assigns a value to a variable.",
				Confidence: 0.6,
			},
			{
				Name:       "call",
				Pattern:    `^[\w.]+\s*\(`,
				Template:   "Calls a function.",
				Confidence: 0.5,
			},
			{
				Name:       "fallback",
				Pattern:    `\S`,
				Template:   "Performs an operation as part of the surrounding logic.",
				Confidence: 0.3,
			},
		},
	}
}
