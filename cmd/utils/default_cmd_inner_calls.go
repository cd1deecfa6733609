package utils

import "github.com/spf13/cobra"

// DefaultPersistentPreRun runs the PersistentPreRun of the parent command, which ingests the global options.
var DefaultPersistentPreRun = func(cmd *cobra.Command, args []string) {
	parent := cmd.Parent()
	if parent != nil && parent.PersistentPreRun != nil {
		parent.PersistentPreRun(parent, args)
	}
}
