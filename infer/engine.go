// Package infer runs single-unit model inference. The engine owns the
// process-wide loaded model instances: it renders prompts, truncates them
// to the model's fixed input limit, and guarantees that no two inference
// calls interleave on one instance, for units of the same or different
// requests alike.
package infer

import (
	"context"
	"errors"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"golang.org/x/time/rate"
)

// Ensure Engine implements explainer.Engine.
var _ explainer.Engine = (*Engine)(nil)

// Defaults applied by NewEngine when the config leaves them zero.
const (
	defaultMaxInputTokens = 512

	// minCodeRunes stops hard truncation from erasing the unit entirely.
	minCodeRunes = 40
)

// Config configures an inference engine.
type Config struct {
	// Models are the loaded instances to pool. At least one is required;
	// more instances allow concurrent requests without interleaving.
	Models []explainer.Model

	// Tokens counts prompt tokens for the truncation policy.
	Tokens explainer.TokenCounter

	// MaxInputTokens is the model's fixed input limit.
	MaxInputTokens int

	// MinContextUnits is the context floor kept while truncating; beyond
	// it the unit's own text is shortened instead.
	MinContextUnits int

	// RatePerSecond throttles inference calls across all instances.
	// Zero disables throttling.
	RatePerSecond float64
}

// Engine wraps the loaded model pool behind the single-unit explain
// operation.
type Engine struct {
	pool            chan explainer.Model
	tokens          explainer.TokenCounter
	maxInputTokens  int
	minContextUnits int
	limiter         *rate.Limiter
}

// NewEngine creates an Engine from loaded model instances.
func NewEngine(cfg Config) (*Engine, error) {
	if len(cfg.Models) == 0 {
		return nil, explainer.Errorf(explainer.EINVALID, "at least one model instance required")
	}
	if cfg.Tokens == nil {
		return nil, explainer.Errorf(explainer.EINVALID, "token counter required")
	}

	maxInput := cfg.MaxInputTokens
	if maxInput <= 0 {
		maxInput = defaultMaxInputTokens
	}

	pool := make(chan explainer.Model, len(cfg.Models))
	for _, m := range cfg.Models {
		pool <- m
	}

	e := &Engine{
		pool:            pool,
		tokens:          cfg.Tokens,
		maxInputTokens:  maxInput,
		minContextUnits: cfg.MinContextUnits,
	}
	if cfg.RatePerSecond > 0 {
		e.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), 1)
	}
	return e, nil
}

// Explain renders a prompt for the unit, truncates it to the input limit,
// and runs one forward pass on a pooled instance. Failures return
// EINFERENCE or ETIMEOUT; the caller downgrades the affected entry.
// No retries are performed.
func (e *Engine) Explain(ctx context.Context, lang explainer.Language, unit explainer.CodeUnit, contextUnits []explainer.CodeUnit) (*explainer.Explanation, error) {
	if err := ctx.Err(); err != nil {
		return nil, explainer.Errorf(explainer.ETIMEOUT, "inference canceled: %v", err)
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, explainer.Errorf(explainer.ETIMEOUT, "inference canceled: %v", err)
		}
	}

	prompt, truncated, err := e.renderPrompt(ctx, lang, unit, contextUnits)
	if err != nil {
		return nil, err
	}

	var model explainer.Model
	select {
	case model = <-e.pool:
	case <-ctx.Done():
		return nil, explainer.Errorf(explainer.ETIMEOUT, "inference canceled: %v", ctx.Err())
	}
	defer func() { e.pool <- model }()

	gen, err := model.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return nil, explainer.Errorf(explainer.ETIMEOUT, "inference canceled: %v", err)
		}
		if explainer.ErrorCode(err) == explainer.EINFERENCE {
			return nil, err
		}
		return nil, explainer.Errorf(explainer.EINFERENCE, "inference failed: %v", err)
	}

	status := explainer.StatusOK
	if truncated {
		status = explainer.StatusTruncated
	}

	return &explainer.Explanation{
		Text:        gen.Text,
		Confidence:  gen.Confidence,
		Status:      status,
		Suggestions: gen.Suggestions,
	}, nil
}

// renderPrompt builds the prompt and applies the truncation policy:
// context units drop farthest-first down to the configured floor, then the
// unit's own text is shortened until the prompt fits the input limit.
func (e *Engine) renderPrompt(ctx context.Context, lang explainer.Language, unit explainer.CodeUnit, contextUnits []explainer.CodeUnit) (explainer.Prompt, bool, error) {
	ctxTexts := make([]string, 0, len(contextUnits))
	for _, u := range contextUnits {
		ctxTexts = append(ctxTexts, u.Text)
	}

	code := unit.Text
	truncated := false

	for {
		p := explainer.Prompt{Language: lang, Context: ctxTexts, Code: code}

		n, err := e.tokens.CountTokens(ctx, p.String())
		if err != nil {
			return explainer.Prompt{}, false, explainer.Errorf(explainer.EINFERENCE, "token count: %v", err)
		}
		if n <= e.maxInputTokens {
			return p, truncated, nil
		}

		if len(ctxTexts) > e.minContextUnits {
			ctxTexts = ctxTexts[1:]
			truncated = true
			continue
		}

		runes := []rune(code)
		if len(runes) <= minCodeRunes {
			// Cannot shrink further; let the model see an over-limit prompt
			// rather than fail the unit.
			return p, true, nil
		}
		code = string(runes[:len(runes)*3/4])
		truncated = true
	}
}
