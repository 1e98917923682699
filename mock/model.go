package mock

import (
	"context"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

var _ explainer.Model = (*Model)(nil)

// Model is a mock implementation of explainer.Model.
type Model struct {
	GenerateFn func(ctx context.Context, prompt explainer.Prompt) (*explainer.Generation, error)
}

func (m *Model) Generate(ctx context.Context, prompt explainer.Prompt) (*explainer.Generation, error) {
	return m.GenerateFn(ctx, prompt)
}
