package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/meigma/jardiff"
)

// NewCreateCmd creates and returns the create subcommand for the jardiff
// CLI. It diffs two archives and writes the patch to the output path.
func NewCreateCmd() *cobra.Command {
	var (
		outputPath string
		minimal    bool
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "create OLD_ARCHIVE NEW_ARCHIVE",
		Short: "Build a patch from an old and a new archive",
		Long: `Build a patch that transforms OLD_ARCHIVE into NEW_ARCHIVE.

Entries whose content already exists in the old archive are recorded as
moves, so the patch carries only genuinely new content. With --minimal,
content shared by several new entries is expressed as repeated moves from
one source instead of storing copies; older appliers reject such patches.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []jardiff.CreateOption{
				jardiff.CreateWithLogger(newLogger(verbose)),
			}
			if minimal {
				opts = append(opts, jardiff.CreateWithMinimal(true))
			}
			return writeFileAtomic(outputPath, func(f *os.File) error {
				return jardiff.CreatePatch(args[0], args[1], f, opts...)
			})
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path to write the patch archive (required)")
	cmd.Flags().BoolVar(&minimal, "minimal", false, "Emit repeated moves instead of storing duplicated content")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	cmd.MarkFlagRequired("output")

	return cmd
}

// writeFileAtomic writes through a temp file in the target's directory and
// renames it into place, ensuring atomic replacement of the target file.
func writeFileAtomic(target string, write func(*os.File) error) error {
	dir := filepath.Dir(target)
	tmp, err := os.CreateTemp(dir, ".jardiff-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
