package infer_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/The-ChandanKV/AI-Code-Explainer/infer"
	"github.com/The-ChandanKV/AI-Code-Explainer/mock"
	"github.com/The-ChandanKV/AI-Code-Explainer/pattern"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// wordCounter counts whitespace-separated tokens, which makes limits easy
// to reason about in tests.
func wordCounter() *mock.TokenCounter {
	return &mock.TokenCounter{
		CountTokensFn: func(_ context.Context, text string) (int, error) {
			return len(strings.Fields(text)), nil
		},
	}
}

func echoModel() *mock.Model {
	return &mock.Model{
		GenerateFn: func(_ context.Context, p explainer.Prompt) (*explainer.Generation, error) {
			return &explainer.Generation{Text: "Explains: " + p.Code, Confidence: 0.8}, nil
		},
	}
}

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("requires at least one model", func(t *testing.T) {
		t.Parallel()

		_, err := infer.NewEngine(infer.Config{Tokens: wordCounter()})

		assert.Equal(t, explainer.EINVALID, explainer.ErrorCode(err))
	})

	t.Run("requires a token counter", func(t *testing.T) {
		t.Parallel()

		_, err := infer.NewEngine(infer.Config{Models: []explainer.Model{echoModel()}})

		assert.Equal(t, explainer.EINVALID, explainer.ErrorCode(err))
	})
}

func TestEngine_Explain(t *testing.T) {
	t.Parallel()

	unit := explainer.CodeUnit{StartLine: 1, EndLine: 1, Text: "print(i)", Kind: explainer.KindStatement}

	t.Run("explains a unit with full context", func(t *testing.T) {
		t.Parallel()

		e, err := infer.NewEngine(infer.Config{
			Models:         []explainer.Model{echoModel()},
			Tokens:         wordCounter(),
			MaxInputTokens: 100,
		})
		require.NoError(t, err)

		got, err := e.Explain(context.Background(), explainer.Python, unit,
			[]explainer.CodeUnit{{Text: "for i in range(3):"}})

		require.NoError(t, err)
		assert.Equal(t, explainer.StatusOK, got.Status)
		assert.Equal(t, "Explains: print(i)", got.Text)
		assert.InDelta(t, 0.8, got.Confidence, 0.001)
	})

	t.Run("drops farthest context first and flags truncation", func(t *testing.T) {
		t.Parallel()

		var seen explainer.Prompt
		model := &mock.Model{
			GenerateFn: func(_ context.Context, p explainer.Prompt) (*explainer.Generation, error) {
				seen = p
				return &explainer.Generation{Text: "ok", Confidence: 0.5}, nil
			},
		}

		// Prompt framing plus the unit costs 8 words; each context unit
		// costs 4. A limit of 18 forces dropping the farthest context unit.
		e, err := infer.NewEngine(infer.Config{
			Models:         []explainer.Model{model},
			Tokens:         wordCounter(),
			MaxInputTokens: 18,
		})
		require.NoError(t, err)

		contextUnits := []explainer.CodeUnit{
			{Text: "alpha beta gamma delta"},
			{Text: "epsilon zeta eta theta"},
			{Text: "iota kappa lambda mu"},
		}

		got, err := e.Explain(context.Background(), explainer.Python, unit, contextUnits)

		require.NoError(t, err)
		assert.Equal(t, explainer.StatusTruncated, got.Status)
		assert.NotEmpty(t, got.Text)
		require.NotEmpty(t, seen.Context)
		// The nearest context survives; the farthest was dropped.
		assert.Equal(t, "iota kappa lambda mu", seen.Context[len(seen.Context)-1])
		assert.Less(t, len(seen.Context), len(contextUnits))
	})

	t.Run("oversized unit is truncated not failed", func(t *testing.T) {
		t.Parallel()

		e, err := infer.NewEngine(infer.Config{
			Models:         []explainer.Model{echoModel()},
			Tokens:         wordCounter(),
			MaxInputTokens: 10,
		})
		require.NoError(t, err)

		big := explainer.CodeUnit{
			StartLine: 1, EndLine: 1, Kind: explainer.KindStatement,
			Text: strings.Repeat("verylongtoken ", 200),
		}

		got, err := e.Explain(context.Background(), explainer.Python, big, nil)

		require.NoError(t, err)
		assert.Equal(t, explainer.StatusTruncated, got.Status)
		assert.NotEmpty(t, got.Text)
	})

	t.Run("model failure maps to an inference error", func(t *testing.T) {
		t.Parallel()

		model := &mock.Model{
			GenerateFn: func(_ context.Context, _ explainer.Prompt) (*explainer.Generation, error) {
				return nil, errors.New("resource exhausted")
			},
		}
		e, err := infer.NewEngine(infer.Config{
			Models: []explainer.Model{model},
			Tokens: wordCounter(),
		})
		require.NoError(t, err)

		_, err = e.Explain(context.Background(), explainer.Python, unit, nil)

		assert.Equal(t, explainer.EINFERENCE, explainer.ErrorCode(err))
	})

	t.Run("expired deadline maps to a timeout error", func(t *testing.T) {
		t.Parallel()

		e, err := infer.NewEngine(infer.Config{
			Models: []explainer.Model{echoModel()},
			Tokens: wordCounter(),
		})
		require.NoError(t, err)

		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err = e.Explain(ctx, explainer.Python, unit, nil)

		assert.Equal(t, explainer.ETIMEOUT, explainer.ErrorCode(err))
	})

	t.Run("no two calls interleave on one instance", func(t *testing.T) {
		t.Parallel()

		var active atomic.Int32
		var maxActive atomic.Int32
		model := &mock.Model{
			GenerateFn: func(_ context.Context, p explainer.Prompt) (*explainer.Generation, error) {
				n := active.Add(1)
				if n > maxActive.Load() {
					maxActive.Store(n)
				}
				time.Sleep(time.Millisecond)
				active.Add(-1)
				return &explainer.Generation{Text: "ok", Confidence: 0.5}, nil
			},
		}

		e, err := infer.NewEngine(infer.Config{
			Models: []explainer.Model{model},
			Tokens: wordCounter(),
		})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = e.Explain(context.Background(), explainer.Python, unit, nil)
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), maxActive.Load())
	})

	t.Run("works end to end with the pattern model", func(t *testing.T) {
		t.Parallel()

		m := pattern.Default()
		e, err := infer.NewEngine(infer.Config{
			Models:         []explainer.Model{m},
			Tokens:         pattern.NewTokenCounter(),
			MaxInputTokens: m.MaxInputTokens(),
		})
		require.NoError(t, err)

		got, err := e.Explain(context.Background(), explainer.Python,
			explainer.CodeUnit{Text: "def greet(name):", Kind: explainer.KindBlockHeader}, nil)

		require.NoError(t, err)
		assert.Equal(t, "Defines a function named greet.", got.Text)
	})
}
