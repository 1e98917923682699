package main

import (
	"encoding/json"
	"fmt"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	result, err := deps.Results.FindResultByID(deps.Ctx, c.ID)
	if err != nil {
		if explainer.ErrorCode(err) == explainer.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: result %q not found. Use 'explain history' to see saved results.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", explainer.ErrorMessage(err))
		}
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprint(deps.Stdout, explainer.FormatResult(result))
	return nil
}
