// Package pipeline assembles ordered explanation results. The assembler
// orchestrates language detection, segmentation, complexity scoring, and
// per-unit inference for one request, and owns the partial-failure policy:
// segmentation problems fail the whole request, inference problems fail
// only the affected unit.
package pipeline

import (
	"context"
	"encoding/hex"
	"sync/atomic"
	"time"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/The-ChandanKV/AI-Code-Explainer/cache"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// defaultMaxContextUnits bounds the prompt context window when neither the
// assembler nor the request sets one.
const defaultMaxContextUnits = 4

// Assembler coordinates the explanation pipeline for one request at a time.
// It is safe for concurrent use: all per-request state lives on the stack.
type Assembler struct {
	Detector  explainer.LanguageDetector
	Segmenter explainer.Segmenter
	Scorer    explainer.Scorer
	Engine    explainer.Engine

	// Advisor, when set, serves requests that ask for snippet-level
	// improvement advice.
	Advisor explainer.Advisor

	// Cache, when set, short-circuits byte-identical submissions.
	Cache explainer.ResultCache

	// Concurrency bounds the per-unit inference worker pool; values <= 1
	// explain units sequentially in document order.
	Concurrency int

	// DefaultDeadline is the per-request budget when the request does not
	// set one. Zero means no deadline.
	DefaultDeadline time.Duration

	// MaxContextUnits bounds the prompt context window. Zero means the
	// package default.
	MaxContextUnits int

	// ExplainCommentary routes blank and comment units through the engine
	// instead of answering them from fixed templates.
	ExplainCommentary bool
}

// ProgressEvent reports progress while a request is being explained.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	StartLine int
	Err       error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting per-unit progress.
type ProgressFunc func(event ProgressEvent)

// ExplainSnippet runs the full pipeline for one request. Per-unit inference
// failures never fail the request: they downgrade the affected entry and
// the result status reflects the mix. The returned result always carries
// exactly one entry per segmented unit, in document order.
func (a *Assembler) ExplainSnippet(ctx context.Context, req explainer.Request, progress ProgressFunc) (*explainer.ExplanationResult, error) {
	if a.Detector == nil || a.Segmenter == nil || a.Scorer == nil {
		return nil, explainer.Errorf(explainer.EINTERNAL, "assembler is missing pipeline components")
	}

	snippet := explainer.NewSnippet(req.Code, req.Language)
	if err := snippet.Validate(); err != nil {
		// Unrecoverable input; there is no partial result for this.
		return nil, err
	}

	lang := a.Detector.Detect(req.Code, req.Language)
	snippet.Detected = lang

	var key string
	if a.Cache != nil {
		key = cache.Key(lang, req.Code)
		if cached, ok := a.Cache.Get(key); ok {
			return cached, nil
		}
	}

	units := a.Segmenter.Segment(req.Code, lang)

	scores := make([]float64, len(units))
	for i, u := range units {
		scores[i] = a.Scorer.Score(u)
	}

	result := &explainer.ExplanationResult{
		ContentHash:         contentHash(req.Code),
		DeclaredLanguage:    req.Language,
		DetectedLanguage:    lang,
		LineCount:           snippet.LineCount,
		AggregateComplexity: a.Scorer.Aggregate(scores),
		Complexity:          a.Scorer.Report(req.Code),
		Entries:             []explainer.ExplanationEntry{},
		CreatedAt:           time.Now().UTC(),
	}

	if req.Options != nil && req.Options.IncludeImprovements && a.Advisor != nil {
		result.Improvements = a.Advisor.Improve(req.Code, lang)
	}

	if len(units) == 0 {
		// Nothing to explain is a valid terminal success.
		result.Status = explainer.ResultComplete
		a.store(key, result)
		return result, nil
	}

	runCtx := ctx
	if deadline := a.requestDeadline(req); deadline > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, deadline)
		defer cancel()
	}

	total := len(units)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	entries := make([]explainer.ExplanationEntry, total)
	var completed atomic.Int64

	explainUnit := func(i int) {
		entries[i] = a.explainUnit(runCtx, lang, units, scores, i, a.contextBudget(req))

		done := int(completed.Add(1))
		if progress == nil {
			return
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: done,
			Total:     total,
			StartLine: units[i].StartLine,
		}
		if entries[i].Status == explainer.StatusFailed {
			event.Type = ProgressFailed
		}
		progress(event)
	}

	if a.Concurrency > 1 {
		// Workers complete in arbitrary order; writing by unit index keeps
		// the entry sequence in document order.
		g := &errgroup.Group{}
		g.SetLimit(a.Concurrency)
		for i := range units {
			g.Go(func() error {
				explainUnit(i)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i := range units {
			explainUnit(i)
		}
	}

	result.Entries = entries
	result.Status = explainer.RollupStatus(entries)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	a.store(key, result)
	return result, nil
}

// explainUnit produces the entry for one unit. Commentary units answer from
// fixed templates; everything else goes through the engine, and any engine
// error downgrades just this entry.
func (a *Assembler) explainUnit(ctx context.Context, lang explainer.Language, units []explainer.CodeUnit, scores []float64, i, maxContext int) explainer.ExplanationEntry {
	u := units[i]
	entry := explainer.ExplanationEntry{
		UnitIndex:      i,
		StartLine:      u.StartLine,
		EndLine:        u.EndLine,
		Kind:           u.Kind,
		UnitComplexity: scores[i],
	}

	if u.Kind.Commentary() && !a.ExplainCommentary {
		entry.Explanation = commentaryText(u.Kind)
		entry.Confidence = 1
		entry.Status = explainer.StatusOK
		return entry
	}

	if a.Engine == nil || ctx.Err() != nil {
		// Engine unavailable, or the request budget is already spent;
		// skip inference entirely for this unit.
		entry.Status = explainer.StatusFailed
		return entry
	}

	exp, err := a.Engine.Explain(ctx, lang, u, contextWindow(units, i, maxContext))
	if err != nil {
		entry.Status = explainer.StatusFailed
		return entry
	}

	entry.Explanation = exp.Text
	entry.Confidence = exp.Confidence
	entry.Status = exp.Status
	entry.Suggestions = exp.Suggestions
	return entry
}

func (a *Assembler) requestDeadline(req explainer.Request) time.Duration {
	if req.Options != nil && req.Options.DeadlineMs > 0 {
		return time.Duration(req.Options.DeadlineMs) * time.Millisecond
	}
	return a.DefaultDeadline
}

func (a *Assembler) contextBudget(req explainer.Request) int {
	if req.Options != nil && req.Options.MaxContextUnits > 0 {
		return req.Options.MaxContextUnits
	}
	if a.MaxContextUnits > 0 {
		return a.MaxContextUnits
	}
	return defaultMaxContextUnits
}

// store caches the finished result when caching is enabled.
func (a *Assembler) store(key string, result *explainer.ExplanationResult) {
	if a.Cache != nil && key != "" {
		a.Cache.Put(key, result)
	}
}

// contextWindow returns up to maxContext units preceding unit i, in
// document order, which is farthest-first for truncation.
func contextWindow(units []explainer.CodeUnit, i, maxContext int) []explainer.CodeUnit {
	start := i - maxContext
	if start < 0 {
		start = 0
	}
	return units[start:i]
}

// commentaryText answers blank and comment units without inference.
func commentaryText(kind explainer.UnitKind) string {
	if kind == explainer.KindBlank {
		return "A blank line separating sections of the code."
	}
	return "A comment describing the surrounding code."
}

// contentHash computes the xxHash of the code text as a hex string.
func contentHash(code string) string {
	h := xxhash.Sum64String(code)
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b)
}
