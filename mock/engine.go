package mock

import (
	"context"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

var _ explainer.Engine = (*Engine)(nil)

// Engine is a mock implementation of explainer.Engine.
type Engine struct {
	ExplainFn func(ctx context.Context, lang explainer.Language, unit explainer.CodeUnit, contextUnits []explainer.CodeUnit) (*explainer.Explanation, error)
}

func (e *Engine) Explain(ctx context.Context, lang explainer.Language, unit explainer.CodeUnit, contextUnits []explainer.CodeUnit) (*explainer.Explanation, error) {
	return e.ExplainFn(ctx, lang, unit, contextUnits)
}
