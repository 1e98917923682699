package explainer

import (
	"strings"
	"unicode/utf8"
)

// CodeSnippet represents one submitted piece of source code. It is immutable
// once submitted and exists only for the duration of a single request.
type CodeSnippet struct {
	Code      string   `json:"code"`
	Declared  Language `json:"declaredLanguage,omitempty"`
	Detected  Language `json:"detectedLanguage"`
	LineCount int      `json:"lineCount"`
}

// NewSnippet creates a snippet from raw code text and an optional declared
// language. The detected language is resolved later by a LanguageDetector.
func NewSnippet(code string, declared Language) *CodeSnippet {
	return &CodeSnippet{
		Code:      code,
		Declared:  declared,
		LineCount: countLines(code),
	}
}

// Validate returns an error if the snippet cannot be segmented at all.
// Binary or otherwise non-text content is the only unrecoverable input.
func (s *CodeSnippet) Validate() error {
	if !utf8.ValidString(s.Code) {
		return Errorf(ESEGMENTATION, "code is not valid UTF-8 text")
	}
	if strings.ContainsRune(s.Code, '\x00') {
		return Errorf(ESEGMENTATION, "code contains binary content")
	}
	return nil
}

// countLines ignores the trailing-newline artifact so that the count
// matches the segmenter's view of the snippet.
func countLines(code string) int {
	if code == "" {
		return 0
	}
	code = strings.TrimSuffix(code, "\n")
	if code == "" {
		return 1
	}
	return strings.Count(code, "\n") + 1
}

// UnitKind classifies a code unit. The set is closed.
type UnitKind string

// Unit kinds. Opaque marks lines that defeated the language heuristics and
// were emitted as single-line units rather than failing segmentation.
const (
	KindStatement   UnitKind = "statement"
	KindBlockHeader UnitKind = "block-header"
	KindComment     UnitKind = "comment"
	KindBlank       UnitKind = "blank"
	KindOpaque      UnitKind = "opaque"
)

// Commentary reports whether the kind carries no executable code.
// Commentary units may be explained from templates without model inference.
func (k UnitKind) Commentary() bool {
	return k == KindComment || k == KindBlank
}

// CodeUnit is the smallest independently explainable span of source lines.
// Units are owned by their snippet's unit sequence; ordering is document
// order and immutable after segmentation.
type CodeUnit struct {
	StartLine int      `json:"startLine"` // 1-based, inclusive
	EndLine   int      `json:"endLine"`   // 1-based, inclusive
	Text      string   `json:"text"`
	Depth     int      `json:"depth"` // nesting depth, 0 at top level
	Kind      UnitKind `json:"kind"`
}

// Segmenter splits source text into an ordered sequence of explainable units.
type Segmenter interface {
	// Segment is total: any non-empty text yields at least one unit, and
	// all-whitespace text yields an empty sequence. Lines that do not parse
	// cleanly under the language's heuristics degrade to single-line opaque
	// units; Segment never fails on malformed input.
	Segment(text string, lang Language) []CodeUnit
}
