package explainer

import (
	"context"
	"time"
)

// EntryStatus is the outcome of explaining one unit.
type EntryStatus string

// Entry statuses.
const (
	StatusOK        EntryStatus = "ok"
	StatusTruncated EntryStatus = "truncated"
	StatusFailed    EntryStatus = "failed"
)

// ResultStatus is the overall outcome of one explanation request.
type ResultStatus string

// Result statuses.
const (
	ResultComplete ResultStatus = "complete"
	ResultPartial  ResultStatus = "partial"
	ResultFailed   ResultStatus = "failed"
)

// ExplanationEntry pairs a unit (referenced by index) with its generated
// explanation. One entry exists per unit, in document order. Failed entries
// carry an empty explanation.
type ExplanationEntry struct {
	UnitIndex      int         `json:"unitIndex"`
	StartLine      int         `json:"startLine"`
	EndLine        int         `json:"endLine"`
	Kind           UnitKind    `json:"kind"`
	Explanation    string      `json:"explanation"`
	Confidence     float64     `json:"confidence"`
	Status         EntryStatus `json:"status"`
	UnitComplexity float64     `json:"unitComplexity"`
	Suggestions    []string    `json:"suggestions,omitempty"`
}

// ImprovementReport collects snippet-level improvement advice: complexity
// advice plus best-practice and error-prevention findings. It is produced
// on request and describes the snippet as a whole, unlike the per-unit
// suggestions attached to entries.
type ImprovementReport struct {
	TimeComplexity  string   `json:"timeComplexity,omitempty"`
	SpaceComplexity string   `json:"spaceComplexity,omitempty"`
	BestPractices   []string `json:"bestPractices,omitempty"`
	ErrorFixes      []string `json:"errorFixes,omitempty"`
}

// Empty reports whether the advice has no findings at all.
func (r *ImprovementReport) Empty() bool {
	return r.TimeComplexity == "" && r.SpaceComplexity == "" &&
		len(r.BestPractices) == 0 && len(r.ErrorFixes) == 0
}

// Advisor produces snippet-level improvement advice.
type Advisor interface {
	Improve(code string, lang Language) *ImprovementReport
}

// ExplanationResult is the terminal aggregate of one explanation request.
// It is created once by the assembler and read-only afterward; it is the
// only entity handed across the system boundary.
type ExplanationResult struct {
	ID                  string             `json:"id,omitempty"`
	ContentHash         string             `json:"contentHash"`
	DeclaredLanguage    Language           `json:"declaredLanguage,omitempty"`
	DetectedLanguage    Language           `json:"detectedLanguage"`
	LineCount           int                `json:"lineCount"`
	Status              ResultStatus       `json:"status"`
	AggregateComplexity float64            `json:"aggregateComplexity"`
	Complexity          ComplexityReport   `json:"complexity"`
	Improvements        *ImprovementReport `json:"improvements,omitempty"`
	Entries             []ExplanationEntry `json:"entries"`
	CreatedAt           time.Time          `json:"createdAt"`
}

// Validate returns an error if the result contains invalid fields.
func (r *ExplanationResult) Validate() error {
	if r.DetectedLanguage == "" {
		return Errorf(EINVALID, "result detected language required")
	}
	switch r.Status {
	case ResultComplete, ResultPartial, ResultFailed:
	default:
		return Errorf(EINVALID, "invalid result status %q", r.Status)
	}
	return nil
}

// RollupStatus derives the overall result status from entry statuses.
// All entries ok yields complete; every entry failed yields failed; any
// other mix yields partial. Zero entries is a valid complete result.
func RollupStatus(entries []ExplanationEntry) ResultStatus {
	if len(entries) == 0 {
		return ResultComplete
	}
	ok, failed := 0, 0
	for _, e := range entries {
		switch e.Status {
		case StatusOK:
			ok++
		case StatusFailed:
			failed++
		}
	}
	switch {
	case ok == len(entries):
		return ResultComplete
	case failed == len(entries):
		return ResultFailed
	default:
		return ResultPartial
	}
}

// Options tunes a single explanation request.
type Options struct {
	// MaxContextUnits bounds the window of surrounding units rendered into
	// each prompt. Zero means the assembler default.
	MaxContextUnits int `json:"maxContextUnits,omitempty"`

	// DeadlineMs is the per-request time budget in milliseconds. Zero means
	// the assembler default.
	DeadlineMs int `json:"deadlineMs,omitempty"`

	// IncludeImprovements asks for snippet-level improvement advice on the
	// result.
	IncludeImprovements bool `json:"includeImprovements,omitempty"`
}

// Request is the inbound request shape at the pipeline boundary.
type Request struct {
	Code     string   `json:"code"`
	Language Language `json:"language,omitempty"`
	Options  *Options `json:"options,omitempty"`
}

// ResultService stores completed explanation results for later retrieval.
type ResultService interface {
	// SaveResult persists a result, assigning its ID and creation time.
	SaveResult(ctx context.Context, result *ExplanationResult) error

	// FindResultByID retrieves a result by ID.
	// Returns ENOTFOUND if the result does not exist.
	FindResultByID(ctx context.Context, id string) (*ExplanationResult, error)

	// FindResults retrieves results matching the filter.
	FindResults(ctx context.Context, filter ResultFilter) ([]*ExplanationResult, error)

	// DeleteResult permanently removes a result and its entries.
	// Returns ENOTFOUND if the result does not exist.
	DeleteResult(ctx context.Context, id string) error
}

// ResultFilter represents a filter for FindResults.
type ResultFilter struct {
	ID       *string       `json:"id"`
	Language *Language     `json:"language"`
	Status   *ResultStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// ResultCache caches completed results keyed by snippet content.
// Implementations must be safe for concurrent use.
type ResultCache interface {
	Get(key string) (*ExplanationResult, bool)
	Put(key string, result *ExplanationResult)
}
