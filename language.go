package explainer

import "strings"

// Language identifies a programming language in the pipeline's closed
// supported set.
type Language string

// Supported languages. Unknown is a valid detection outcome, not an error;
// downstream components fall back to generic segmentation rules for it.
const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	Java       Language = "java"
	CPP        Language = "cpp"
	Unknown    Language = "unknown"
)

// Supported reports whether the language is one of the closed supported set.
// Unknown is never supported as a declaration.
func (l Language) Supported() bool {
	switch l {
	case Python, JavaScript, Java, CPP:
		return true
	}
	return false
}

// ParseLanguage normalizes a user-declared language string onto the closed
// set. Common aliases are accepted; anything unrecognized maps to Unknown.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "python", "python3", "py":
		return Python
	case "javascript", "js", "node", "ecmascript":
		return JavaScript
	case "java":
		return Java
	case "cpp", "c++", "cxx", "cc":
		return CPP
	}
	return Unknown
}

// LanguageDetector resolves the programming language for a snippet.
type LanguageDetector interface {
	// Detect returns the language to use for segmentation heuristics.
	// A supported declared language always wins over heuristics; otherwise
	// ordered signature checks run over the supported set. Detect never
	// fails; Unknown is a valid outcome.
	Detect(text string, declared Language) Language
}
