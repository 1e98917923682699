package pattern

import (
	"context"
	"regexp"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Ensure TokenCounter implements explainer.TokenCounter.
var _ explainer.TokenCounter = (*TokenCounter)(nil)

// subwordLength approximates how many characters one subword token covers.
const subwordLength = 8

var tokenRe = regexp.MustCompile(`\w+|[^\s\w]`)

// TokenCounter approximates model token counts lexically. It is fully
// deterministic and never fails, which makes it the default counter for
// the pattern model and for tests.
type TokenCounter struct{}

// NewTokenCounter creates a new TokenCounter.
func NewTokenCounter() *TokenCounter {
	return &TokenCounter{}
}

// CountTokens counts words and punctuation, splitting long words into
// subword-sized pieces the way real tokenizers tend to.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	count := 0
	for _, tok := range tokenRe.FindAllString(text, -1) {
		count += 1 + (len(tok)-1)/subwordLength
	}
	return count, nil
}
