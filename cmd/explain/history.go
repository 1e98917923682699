package main

import (
	"fmt"
	"time"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := explainer.ResultFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Lang != "" {
		lang := explainer.ParseLanguage(c.Lang)
		filter.Language = &lang
	}
	if c.Status != "" {
		status := explainer.ResultStatus(c.Status)
		filter.Status = &status
	}

	results, err := deps.Results.FindResults(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", explainer.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No results found. Use 'explain run' to create one.")
		return nil
	}

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %-8s  %3d lines  %s\n",
			r.ID, r.DetectedLanguage, r.Status, r.LineCount,
			r.CreatedAt.Format(time.RFC3339))
	}

	return nil
}
