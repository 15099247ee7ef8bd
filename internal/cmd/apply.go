package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/jardiff"
)

// NewApplyCmd creates and returns the apply subcommand for the jardiff CLI.
// It reconstructs the new archive from the old archive and a patch.
func NewApplyCmd() *cobra.Command {
	var (
		outputPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "apply OLD_ARCHIVE PATCH",
		Short: "Reconstruct the new archive from the old one and a patch",
		Long: `Apply PATCH to OLD_ARCHIVE and write the reconstructed archive.

The patch is validated against the old archive before any output is
written: every move source must exist and no output name may be produced
twice. Nothing is written when validation fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []jardiff.ApplyOption{
				jardiff.ApplyWithLogger(newLogger(verbose)),
			}
			return writeFileAtomic(outputPath, func(f *os.File) error {
				return jardiff.ApplyPatch(args[0], args[1], f, opts...)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the reconstructed archive (required)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}
