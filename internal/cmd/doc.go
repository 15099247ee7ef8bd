// Package cmd provides the command-line interface implementation for jardiff.
//
// This package contains all the subcommand implementations for the jardiff CLI
// tool. It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and entry point
//   - create: Build a patch archive from an old and a new archive
//   - apply: Reconstruct a new archive from an old archive and a patch
//   - inspect: Print the operations recorded in a patch
//   - version: Show build version information
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command.
package cmd
