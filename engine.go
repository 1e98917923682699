package explainer

import (
	"context"
	"strings"
)

// TokenCounter counts model tokens in text.
type TokenCounter interface {
	CountTokens(ctx context.Context, text string) (int, error)
}

// Prompt is the rendered input for a single inference call: the unit's own
// text plus a bounded window of surrounding units for context.
type Prompt struct {
	Language Language

	// Context holds surrounding unit texts ordered farthest-first, so
	// truncation drops from the front.
	Context []string

	// Code is the unit's own text. Never empty for a rendered prompt.
	Code string
}

// String returns the flat text form of the prompt. Token counting and
// model input limits are defined over this form.
func (p Prompt) String() string {
	var sb strings.Builder
	sb.WriteString("Explain the following ")
	if p.Language != Unknown && p.Language != "" {
		sb.WriteString(string(p.Language))
		sb.WriteString(" ")
	}
	sb.WriteString("code.\n")
	if len(p.Context) > 0 {
		sb.WriteString("Context:\n")
		for _, c := range p.Context {
			sb.WriteString(c)
			sb.WriteString("\n")
		}
	}
	sb.WriteString("Code:\n")
	sb.WriteString(p.Code)
	return sb.String()
}

// Generation is the decoded output of one model forward pass.
type Generation struct {
	Text        string
	Confidence  float64
	Suggestions []string
}

// Model is one loaded local model instance. Implementations need not be
// safe for concurrent use; the inference engine guarantees that no two
// Generate calls interleave on one instance.
type Model interface {
	Generate(ctx context.Context, prompt Prompt) (*Generation, error)
}

// Explanation is the outcome of explaining a single unit.
type Explanation struct {
	Text        string
	Confidence  float64
	Status      EntryStatus // StatusOK, or StatusTruncated if context was dropped
	Suggestions []string
}

// Engine runs single-unit inference against the process-wide loaded model.
type Engine interface {
	// Explain renders a prompt from the unit plus surrounding context,
	// truncates it to the model's input limit (farthest context first),
	// and runs inference. Per-unit failures return EINFERENCE or ETIMEOUT
	// errors; callers downgrade the affected entry rather than aborting.
	Explain(ctx context.Context, lang Language, unit CodeUnit, context []CodeUnit) (*Explanation, error)
}
