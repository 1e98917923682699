package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ explainer.ResultService = (*ResultService)(nil)

// ResultService implements explainer.ResultService using SQLite.
type ResultService struct {
	db *DB
}

// NewResultService creates a new ResultService.
func NewResultService(db *DB) *ResultService {
	return &ResultService{db: db}
}

// SaveResult persists a result and its entries, assigning the ID and
// creation time.
func (s *ResultService) SaveResult(ctx context.Context, result *explainer.ExplanationResult) error {
	if err := result.Validate(); err != nil {
		return err
	}

	result.ID = uuid.New().String()
	result.CreatedAt = time.Now().UTC()

	improvements, err := marshalImprovements(result.Improvements)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO results (id, content_hash, declared_language, detected_language, line_count,
			status, aggregate_complexity, complexity_label, time_complexity, space_complexity,
			improvements, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, result.ID, result.ContentHash, string(result.DeclaredLanguage), string(result.DetectedLanguage),
		result.LineCount, string(result.Status), result.AggregateComplexity,
		result.Complexity.Label, result.Complexity.TimeComplexity, result.Complexity.SpaceComplexity,
		improvements, result.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, e := range result.Entries {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO entries (result_id, unit_index, start_line, end_line, kind,
				explanation, confidence, status, unit_complexity, suggestions)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, result.ID, e.UnitIndex, e.StartLine, e.EndLine, string(e.Kind),
			e.Explanation, e.Confidence, string(e.Status), e.UnitComplexity,
			strings.Join(e.Suggestions, "\n"))
		if err != nil {
			return err
		}
	}

	return nil
}

// FindResultByID retrieves a result and its entries by ID.
func (s *ResultService) FindResultByID(ctx context.Context, id string) (*explainer.ExplanationResult, error) {
	var r explainer.ExplanationResult
	var improvements, createdAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, content_hash, declared_language, detected_language, line_count,
			status, aggregate_complexity, complexity_label, time_complexity, space_complexity,
			improvements, created_at
		FROM results
		WHERE id = ?
	`, id).Scan(&r.ID, &r.ContentHash, &r.DeclaredLanguage, &r.DetectedLanguage, &r.LineCount,
		&r.Status, &r.AggregateComplexity, &r.Complexity.Label, &r.Complexity.TimeComplexity,
		&r.Complexity.SpaceComplexity, &improvements, &createdAt)

	if err == sql.ErrNoRows {
		return nil, explainer.Errorf(explainer.ENOTFOUND, "result not found")
	}
	if err != nil {
		return nil, err
	}

	r.Improvements, err = unmarshalImprovements(improvements)
	if err != nil {
		return nil, err
	}

	r.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	r.Entries, err = s.findEntries(ctx, r.ID)
	if err != nil {
		return nil, err
	}

	return &r, nil
}

// FindResults retrieves results matching the filter, newest first.
func (s *ResultService) FindResults(ctx context.Context, filter explainer.ResultFilter) ([]*explainer.ExplanationResult, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, content_hash, declared_language, detected_language, line_count,
		status, aggregate_complexity, complexity_label, time_complexity, space_complexity,
		improvements, created_at
		FROM results WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Language != nil {
		query.WriteString(" AND detected_language = ?")
		args = append(args, string(*filter.Language))
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC, id")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*explainer.ExplanationResult
	for rows.Next() {
		var r explainer.ExplanationResult
		var improvements, createdAt string

		if err := rows.Scan(&r.ID, &r.ContentHash, &r.DeclaredLanguage, &r.DetectedLanguage,
			&r.LineCount, &r.Status, &r.AggregateComplexity, &r.Complexity.Label,
			&r.Complexity.TimeComplexity, &r.Complexity.SpaceComplexity,
			&improvements, &createdAt); err != nil {
			return nil, err
		}

		r.Improvements, err = unmarshalImprovements(improvements)
		if err != nil {
			return nil, err
		}

		r.CreatedAt, err = parseRFC3339(createdAt, "created_at")
		if err != nil {
			return nil, err
		}

		results = append(results, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Attach entries after the result rows are fully consumed; SQLite is
	// limited to one connection here.
	for _, r := range results {
		r.Entries, err = s.findEntries(ctx, r.ID)
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

// DeleteResult permanently removes a result; entries cascade.
func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM results WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return explainer.Errorf(explainer.ENOTFOUND, "result not found")
	}

	return nil
}

// marshalImprovements serializes optional advice; nil stores as empty.
func marshalImprovements(report *explainer.ImprovementReport) (string, error) {
	if report == nil {
		return "", nil
	}
	data, err := json.Marshal(report)
	if err != nil {
		return "", fmt.Errorf("failed to encode improvements: %w", err)
	}
	return string(data), nil
}

func unmarshalImprovements(value string) (*explainer.ImprovementReport, error) {
	if value == "" {
		return nil, nil
	}
	var report explainer.ImprovementReport
	if err := json.Unmarshal([]byte(value), &report); err != nil {
		return nil, fmt.Errorf("failed to decode improvements: %w", err)
	}
	return &report, nil
}

// findEntries loads the entries of one result in document order.
func (s *ResultService) findEntries(ctx context.Context, resultID string) ([]explainer.ExplanationEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT unit_index, start_line, end_line, kind, explanation, confidence, status, unit_complexity, suggestions
		FROM entries
		WHERE result_id = ?
		ORDER BY unit_index ASC
	`, resultID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []explainer.ExplanationEntry{}
	for rows.Next() {
		var e explainer.ExplanationEntry
		var suggestions string

		if err := rows.Scan(&e.UnitIndex, &e.StartLine, &e.EndLine, &e.Kind, &e.Explanation,
			&e.Confidence, &e.Status, &e.UnitComplexity, &suggestions); err != nil {
			return nil, err
		}

		if suggestions != "" {
			e.Suggestions = strings.Split(suggestions, "\n")
		}

		entries = append(entries, e)
	}

	return entries, rows.Err()
}
