package pipeline_test

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/The-ChandanKV/AI-Code-Explainer/cache"
	"github.com/The-ChandanKV/AI-Code-Explainer/mock"
	"github.com/The-ChandanKV/AI-Code-Explainer/pipeline"
	"github.com/The-ChandanKV/AI-Code-Explainer/segment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// passthroughDetector trusts the declared language and otherwise answers
// Python, which keeps the tests independent of detection heuristics.
func passthroughDetector() *mock.LanguageDetector {
	return &mock.LanguageDetector{
		DetectFn: func(_ string, declared explainer.Language) explainer.Language {
			if declared != "" {
				return declared
			}
			return explainer.Python
		},
	}
}

func flatScorer() *mock.Scorer {
	return &mock.Scorer{
		ScoreFn: func(_ explainer.CodeUnit) float64 { return 1 },
		AggregateFn: func(scores []float64) float64 {
			var sum float64
			for _, s := range scores {
				sum += s
			}
			return sum
		},
		ReportFn: func(_ string) explainer.ComplexityReport {
			return explainer.ComplexityReport{Label: "Low", TimeComplexity: "O(1)", SpaceComplexity: "O(1)"}
		},
	}
}

func okEngine() *mock.Engine {
	return &mock.Engine{
		ExplainFn: func(_ context.Context, _ explainer.Language, unit explainer.CodeUnit, _ []explainer.CodeUnit) (*explainer.Explanation, error) {
			return &explainer.Explanation{
				Text:       "Explains: " + unit.Text,
				Confidence: 0.8,
				Status:     explainer.StatusOK,
			}, nil
		},
	}
}

func newAssembler(engine explainer.Engine) *pipeline.Assembler {
	return &pipeline.Assembler{
		Detector:  passthroughDetector(),
		Segmenter: segment.NewSegmenter(),
		Scorer:    flatScorer(),
		Engine:    engine,
	}
}

func TestAssembler_ExplainSnippet(t *testing.T) {
	t.Parallel()

	t.Run("explains a python snippet unit by unit", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(okEngine())

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "for i in range(3):\n    print(i)\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, explainer.ResultComplete, got.Status)
		assert.Equal(t, explainer.Python, got.DetectedLanguage)
		assert.Equal(t, 2, got.LineCount)
		require.Len(t, got.Entries, 2)
		assert.Equal(t, explainer.KindBlockHeader, got.Entries[0].Kind)
		assert.Equal(t, explainer.KindStatement, got.Entries[1].Kind)
		assert.Equal(t, "Explains: print(i)", got.Entries[1].Explanation)
		assert.NotEmpty(t, got.ContentHash)
	})

	t.Run("whitespace only input yields a complete empty result", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(okEngine())

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{Code: "   \n\t\n  \n"}, nil)

		require.NoError(t, err)
		assert.Equal(t, explainer.ResultComplete, got.Status)
		assert.Empty(t, got.Entries)
		assert.NotNil(t, got.Entries)
		assert.Zero(t, got.AggregateComplexity)
	})

	t.Run("binary input fails the whole request", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(okEngine())

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{Code: "x = 1\x00y = 2"}, nil)

		assert.Nil(t, got)
		assert.Equal(t, explainer.ESEGMENTATION, explainer.ErrorCode(err))
	})

	t.Run("declared language wins over detection", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(okEngine())

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "x = 1\n",
			Language: explainer.JavaScript,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, explainer.JavaScript, got.DeclaredLanguage)
		assert.Equal(t, explainer.JavaScript, got.DetectedLanguage)
	})

	t.Run("one entry per unit regardless of engine outcome", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		engine := &mock.Engine{
			ExplainFn: func(_ context.Context, _ explainer.Language, unit explainer.CodeUnit, _ []explainer.CodeUnit) (*explainer.Explanation, error) {
				if calls.Add(1)%2 == 0 {
					return nil, explainer.Errorf(explainer.EINFERENCE, "model rejected input")
				}
				return &explainer.Explanation{Text: "ok", Confidence: 0.5, Status: explainer.StatusOK}, nil
			},
		}
		a := newAssembler(engine)

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "a = 1\nb = 2\nc = 3\nd = 4\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		require.Len(t, got.Entries, 4)
		assert.Equal(t, explainer.ResultPartial, got.Status)
		for i, e := range got.Entries {
			assert.Equal(t, i, e.UnitIndex)
			if e.Status == explainer.StatusFailed {
				assert.Empty(t, e.Explanation)
			}
		}
	})

	t.Run("all units failing yields a failed result", func(t *testing.T) {
		t.Parallel()

		engine := &mock.Engine{
			ExplainFn: func(_ context.Context, _ explainer.Language, _ explainer.CodeUnit, _ []explainer.CodeUnit) (*explainer.Explanation, error) {
				return nil, errors.New("model crashed")
			},
		}
		a := newAssembler(engine)

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "a = 1\nb = 2\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, explainer.ResultFailed, got.Status)
	})

	t.Run("nil engine downgrades every code unit", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(nil)

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "a = 1\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, explainer.ResultFailed, got.Status)
	})

	t.Run("tiny deadline never reports complete", func(t *testing.T) {
		t.Parallel()

		engine := &mock.Engine{
			ExplainFn: func(ctx context.Context, _ explainer.Language, _ explainer.CodeUnit, _ []explainer.CodeUnit) (*explainer.Explanation, error) {
				select {
				case <-ctx.Done():
					return nil, explainer.Errorf(explainer.ETIMEOUT, "explanation timed out")
				case <-time.After(50 * time.Millisecond):
					return &explainer.Explanation{Text: "ok", Status: explainer.StatusOK}, nil
				}
			},
		}
		a := newAssembler(engine)

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "a = 1\nb = 2\nc = 3\n",
			Language: explainer.Python,
			Options:  &explainer.Options{DeadlineMs: 1},
		}, nil)

		require.NoError(t, err)
		require.Len(t, got.Entries, 3)
		assert.NotEqual(t, explainer.ResultComplete, got.Status)
	})

	t.Run("commentary units skip the engine", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int32
		engine := &mock.Engine{
			ExplainFn: func(_ context.Context, _ explainer.Language, unit explainer.CodeUnit, _ []explainer.CodeUnit) (*explainer.Explanation, error) {
				calls.Add(1)
				return &explainer.Explanation{Text: "Explains: " + unit.Text, Status: explainer.StatusOK}, nil
			},
		}
		a := newAssembler(engine)

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "# setup\n\nx = 1\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		require.Len(t, got.Entries, 3)
		assert.Equal(t, int32(1), calls.Load())
		assert.Equal(t, explainer.KindComment, got.Entries[0].Kind)
		assert.NotEmpty(t, got.Entries[0].Explanation)
		assert.Equal(t, explainer.StatusOK, got.Entries[0].Status)
		assert.Equal(t, explainer.KindBlank, got.Entries[1].Kind)
		assert.NotEmpty(t, got.Entries[1].Explanation)
		assert.Equal(t, explainer.ResultComplete, got.Status)
	})

	t.Run("worker pool preserves document order", func(t *testing.T) {
		t.Parallel()

		units := make([]explainer.CodeUnit, 16)
		for i := range units {
			units[i] = explainer.CodeUnit{
				StartLine: i + 1, EndLine: i + 1,
				Text: fmt.Sprintf("stmt%d", i),
				Kind: explainer.KindStatement,
			}
		}
		segmenter := &mock.Segmenter{
			SegmentFn: func(_ string, _ explainer.Language) []explainer.CodeUnit { return units },
		}
		engine := &mock.Engine{
			ExplainFn: func(_ context.Context, _ explainer.Language, unit explainer.CodeUnit, _ []explainer.CodeUnit) (*explainer.Explanation, error) {
				// Vary completion order across workers.
				time.Sleep(time.Duration(len(unit.Text)%3) * time.Millisecond)
				return &explainer.Explanation{Text: "Explains: " + unit.Text, Status: explainer.StatusOK}, nil
			},
		}
		a := newAssembler(engine)
		a.Segmenter = segmenter
		a.Concurrency = 4

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "placeholder\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		require.Len(t, got.Entries, len(units))
		for i, e := range got.Entries {
			assert.Equal(t, i, e.UnitIndex)
			assert.Equal(t, "Explains: "+units[i].Text, e.Explanation)
		}
	})

	t.Run("context window passed to the engine is bounded and nearest last", func(t *testing.T) {
		t.Parallel()

		var windows [][]explainer.CodeUnit
		engine := &mock.Engine{
			ExplainFn: func(_ context.Context, _ explainer.Language, _ explainer.CodeUnit, contextUnits []explainer.CodeUnit) (*explainer.Explanation, error) {
				windows = append(windows, contextUnits)
				return &explainer.Explanation{Text: "ok", Status: explainer.StatusOK}, nil
			},
		}
		a := newAssembler(engine)
		a.MaxContextUnits = 2

		_, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "a = 1\nb = 2\nc = 3\nd = 4\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		require.Len(t, windows, 4)
		assert.Empty(t, windows[0])
		assert.Len(t, windows[1], 1)
		assert.Len(t, windows[3], 2)
		assert.Equal(t, "c = 3", windows[3][len(windows[3])-1].Text)
	})

	t.Run("reports progress per unit", func(t *testing.T) {
		t.Parallel()

		a := newAssembler(okEngine())

		var events []pipeline.ProgressEvent
		_, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "a = 1\nb = 2\n",
			Language: explainer.Python,
		}, func(e pipeline.ProgressEvent) { events = append(events, e) })

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, pipeline.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, pipeline.ProgressCompleted, events[1].Type)
		assert.Equal(t, pipeline.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})

	t.Run("improvement advice is produced only when requested", func(t *testing.T) {
		t.Parallel()

		advice := &explainer.ImprovementReport{
			BestPractices: []string{"Add comments to explain complex logic."},
		}
		a := newAssembler(okEngine())
		a.Advisor = &mock.Advisor{
			ImproveFn: func(_ string, _ explainer.Language) *explainer.ImprovementReport {
				return advice
			},
		}

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "x = 1\n",
			Language: explainer.Python,
			Options:  &explainer.Options{IncludeImprovements: true},
		}, nil)

		require.NoError(t, err)
		assert.Same(t, advice, got.Improvements)

		got, err = a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "x = 1\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		assert.Nil(t, got.Improvements)
	})

	t.Run("missing components is an internal error", func(t *testing.T) {
		t.Parallel()

		a := &pipeline.Assembler{}

		_, err := a.ExplainSnippet(context.Background(), explainer.Request{Code: "x = 1"}, nil)

		assert.Equal(t, explainer.EINTERNAL, explainer.ErrorCode(err))
	})
}

func TestAssembler_Cache(t *testing.T) {
	t.Parallel()

	t.Run("serves a cached result without running the pipeline", func(t *testing.T) {
		t.Parallel()

		cached := &explainer.ExplanationResult{ID: "cached", Status: explainer.ResultComplete}
		var engineCalls atomic.Int32

		a := newAssembler(&mock.Engine{
			ExplainFn: func(_ context.Context, _ explainer.Language, _ explainer.CodeUnit, _ []explainer.CodeUnit) (*explainer.Explanation, error) {
				engineCalls.Add(1)
				return &explainer.Explanation{Text: "ok", Status: explainer.StatusOK}, nil
			},
		})
		a.Cache = &mock.ResultCache{
			GetFn: func(_ string) (*explainer.ExplanationResult, bool) { return cached, true },
			PutFn: func(_ string, _ *explainer.ExplanationResult) { t.Error("unexpected cache put") },
		}

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "x = 1\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		assert.Same(t, cached, got)
		assert.Zero(t, engineCalls.Load())
	})

	t.Run("stores the assembled result on a miss", func(t *testing.T) {
		t.Parallel()

		var putKey string
		var putResult *explainer.ExplanationResult

		a := newAssembler(okEngine())
		a.Cache = &mock.ResultCache{
			GetFn: func(_ string) (*explainer.ExplanationResult, bool) { return nil, false },
			PutFn: func(key string, r *explainer.ExplanationResult) {
				putKey = key
				putResult = r
			},
		}

		got, err := a.ExplainSnippet(context.Background(), explainer.Request{
			Code:     "x = 1\n",
			Language: explainer.Python,
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, cache.Key(explainer.Python, "x = 1\n"), putKey)
		assert.Same(t, got, putResult)
	})
}
