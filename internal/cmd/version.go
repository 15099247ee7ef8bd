package cmd

import (
	"github.com/spf13/cobra"

	"github.com/meigma/jardiff/version"
)

// NewVersionCmd creates and returns the version subcommand for the jardiff
// CLI.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			version.PrintVersion(cmd.OutOrStdout(), "jardiff")
		},
	}
}
