package main

import (
	"fmt"

	explainer "github.com/The-ChandanKV/AI-Code-Explainer"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return explainer.Errorf(explainer.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Results.DeleteResult(deps.Ctx, c.ID); err != nil {
		if explainer.ErrorCode(err) == explainer.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: result %q not found. Use 'explain history' to see saved results.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", explainer.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted result %s\n", c.ID)
	return nil
}
