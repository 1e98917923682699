package mock

import (
	"context"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

var _ explainer.ResultService = (*ResultService)(nil)

// ResultService is a mock implementation of explainer.ResultService.
type ResultService struct {
	SaveResultFn     func(ctx context.Context, result *explainer.ExplanationResult) error
	FindResultByIDFn func(ctx context.Context, id string) (*explainer.ExplanationResult, error)
	FindResultsFn    func(ctx context.Context, filter explainer.ResultFilter) ([]*explainer.ExplanationResult, error)
	DeleteResultFn   func(ctx context.Context, id string) error
}

func (s *ResultService) SaveResult(ctx context.Context, result *explainer.ExplanationResult) error {
	return s.SaveResultFn(ctx, result)
}

func (s *ResultService) FindResultByID(ctx context.Context, id string) (*explainer.ExplanationResult, error) {
	return s.FindResultByIDFn(ctx, id)
}

func (s *ResultService) FindResults(ctx context.Context, filter explainer.ResultFilter) ([]*explainer.ExplanationResult, error) {
	return s.FindResultsFn(ctx, filter)
}

func (s *ResultService) DeleteResult(ctx context.Context, id string) error {
	return s.DeleteResultFn(ctx, id)
}
