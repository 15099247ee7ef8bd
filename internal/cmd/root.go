package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/meigma/jardiff/version"
)

// NewRootCmd creates and returns the root cobra command for the jardiff CLI.
// It sets up all subcommands and basic configuration.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "jardiff",
		Short: "jardiff - content-aware deltas for zip and jar archives",
		Long: `jardiff builds and applies deltas between zip archives.

A patch is itself a zip archive: a control index lists entries to remove
or move, and the patch carries only the entries whose content is new.
Entries that merely changed compression or metadata transfer as moves,
so repacked archives produce small patches.

Use subcommands to perform different operations:
  - create: Build a patch from an old and a new archive
  - apply: Reconstruct the new archive from the old one and a patch
  - inspect: Print the operations recorded in a patch`,
		Version: version.GetFullVersion(),
	}

	rootCmd.AddCommand(NewCreateCmd())
	rootCmd.AddCommand(NewApplyCmd())
	rootCmd.AddCommand(NewInspectCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newLogger returns the logger backing --verbose output. Without verbose
// the logger discards everything.
func newLogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
