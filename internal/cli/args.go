package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// hasPipelineArgs reports whether args are the three pipeline paths.
func hasPipelineArgs(args []string) bool {
	return len(args) == 3
}

// RequireCategoriesPath validates that exactly one categories CSV argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireCategoriesPath(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <categories.csv>

Usage: %s

Example:
  %s disaster_categories.csv`, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}
