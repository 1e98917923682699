// Package slog provides logging decorators for pipeline components.
package slog

import (
	"context"
	"log/slog"
	"time"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Ensure LoggingEngine implements explainer.Engine.
var _ explainer.Engine = (*LoggingEngine)(nil)

// LoggingEngine wraps an Engine with per-unit inference logging.
type LoggingEngine struct {
	next   explainer.Engine
	logger *slog.Logger
}

// NewLoggingEngine creates a new LoggingEngine.
func NewLoggingEngine(next explainer.Engine, logger *slog.Logger) *LoggingEngine {
	return &LoggingEngine{next: next, logger: logger}
}

// Explain delegates to the wrapped engine and logs the outcome.
func (e *LoggingEngine) Explain(ctx context.Context, lang explainer.Language, unit explainer.CodeUnit, contextUnits []explainer.CodeUnit) (*explainer.Explanation, error) {
	begin := time.Now()
	exp, err := e.next.Explain(ctx, lang, unit, contextUnits)
	if err != nil {
		e.logger.Error("explain",
			"language", string(lang),
			"startLine", unit.StartLine,
			"code", explainer.ErrorCode(err),
			"err", explainer.ErrorMessage(err),
			"duration", time.Since(begin),
		)
		return nil, err
	}
	e.logger.Info("explain",
		"language", string(lang),
		"startLine", unit.StartLine,
		"status", string(exp.Status),
		"confidence", exp.Confidence,
		"duration", time.Since(begin),
	)
	return exp, nil
}
