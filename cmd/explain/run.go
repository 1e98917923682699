package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
	"github.com/The-ChandanKV/AI-Code-Explainer/pipeline"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	code, err := c.readCode(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	var declared explainer.Language
	if c.Lang != "" {
		declared = explainer.ParseLanguage(c.Lang)
		if declared == explainer.Unknown {
			fmt.Fprintf(deps.Stderr, "warning: unrecognized language %q, detecting instead\n", c.Lang)
		}
	}

	req := explainer.Request{
		Code:     code,
		Language: declared,
		Options: &explainer.Options{
			MaxContextUnits:     c.MaxContext,
			DeadlineMs:          c.Deadline,
			IncludeImprovements: c.Improve,
		},
	}

	var progress pipeline.ProgressFunc
	if c.Verbose {
		progress = func(e pipeline.ProgressEvent) {
			if e.Type == pipeline.ProgressCompleted || e.Type == pipeline.ProgressFailed {
				fmt.Fprintf(deps.Stderr, "explained %d/%d units\n", e.Completed, e.Total)
			}
		}
	}

	result, err := deps.Assembler.ExplainSnippet(deps.Ctx, req, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", explainer.ErrorMessage(err))
		return err
	}

	// Persist a copy: the assembler may have cached the result, and saving
	// assigns the ID and creation time, which must not reach the cached one.
	out := result
	if !c.NoSave {
		saved := *result
		if err := deps.Results.SaveResult(deps.Ctx, &saved); err != nil {
			fmt.Fprintf(deps.Stderr, "warning: failed to save result: %s\n", explainer.ErrorMessage(err))
		} else {
			out = &saved
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprint(deps.Stdout, explainer.FormatResult(out))
	if out.ID != "" {
		fmt.Fprintf(deps.Stdout, "\nSaved as %s\n", out.ID)
	}
	return nil
}

// readCode loads the snippet from the file argument or stdin.
func (c *RunCmd) readCode(stdin io.Reader) (string, error) {
	if c.File != "" {
		data, err := os.ReadFile(c.File)
		if err != nil {
			return "", fmt.Errorf("failed to read %q: %w", c.File, err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
