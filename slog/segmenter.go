package slog

import (
	"log/slog"
	"time"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Ensure LoggingSegmenter implements explainer.Segmenter.
var _ explainer.Segmenter = (*LoggingSegmenter)(nil)

// LoggingSegmenter wraps a Segmenter with debug logging for unit counts.
type LoggingSegmenter struct {
	next   explainer.Segmenter
	logger *slog.Logger
}

// NewLoggingSegmenter creates a new LoggingSegmenter.
func NewLoggingSegmenter(next explainer.Segmenter, logger *slog.Logger) *LoggingSegmenter {
	return &LoggingSegmenter{next: next, logger: logger}
}

// Segment delegates to the wrapped segmenter and logs the unit count.
func (s *LoggingSegmenter) Segment(text string, lang explainer.Language) []explainer.CodeUnit {
	begin := time.Now()
	units := s.next.Segment(text, lang)
	s.logger.Info("segment",
		"language", string(lang),
		"units", len(units),
		"duration", time.Since(begin),
	)
	return units
}
