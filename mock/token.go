package mock

import (
	"context"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

var _ explainer.TokenCounter = (*TokenCounter)(nil)

// TokenCounter is a mock implementation of explainer.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return tc.CountTokensFn(ctx, text)
}
