// Package cli implements the xdiff command-line tool: file I/O, XML
// parsing/serialization, and flag handling around the core engine, which
// never touches a filesystem or a byte stream itself.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "xdiff",
	Short:         "Structural and textual diff for labeled-ordered-tree documents",
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the CLI, returning the first error encountered.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
