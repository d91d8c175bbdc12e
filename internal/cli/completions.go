package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/msgcat/pkg/msgcat"
)

var coercionModes = []string{string(msgcat.CoerceLast), string(msgcat.CoerceAll)}

// completePipelineArgs completes two CSV files, then any file for the database.
func completePipelineArgs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	switch {
	case len(args) < 2:
		return []string{"csv"}, cobra.ShellCompDirectiveFilterFileExt
	case len(args) == 2:
		return nil, cobra.ShellCompDirectiveDefault
	default:
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
}

// completeCSVFiles completes a single CSV file argument.
func completeCSVFiles(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return []string{"csv"}, cobra.ShellCompDirectiveFilterFileExt
}

// completeCoercionModes provides shell completion for --coerce values.
func completeCoercionModes(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var matches []string
	for _, mode := range coercionModes {
		if strings.HasPrefix(mode, toComplete) {
			matches = append(matches, mode)
		}
	}
	return matches, cobra.ShellCompDirectiveNoFileComp
}
