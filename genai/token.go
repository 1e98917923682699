// Package genai provides token counting backed by the genai local
// tokenizer. Counting runs entirely offline against a downloaded vocabulary;
// no inference API is involved.
package genai

import (
	"context"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ explainer.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens using a local tokenizer vocabulary.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a new TokenCounter for the given tokenizer model.
// A vocabulary that cannot be loaded is a startup error.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, explainer.Errorf(explainer.ESTARTUP, "tokenizer %q: %v", model, err)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens counts the number of tokens in the given text.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	contents := []*genai.Content{
		genai.NewContentFromText(text, "user"),
	}

	result, err := tc.tok.CountTokens(contents, nil)
	if err != nil {
		return 0, explainer.Errorf(explainer.EINFERENCE, "count tokens: %v", err)
	}

	return int(result.TotalTokens), nil
}
