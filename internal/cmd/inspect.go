package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meigma/jardiff"
)

// NewInspectCmd creates and returns the inspect subcommand for the jardiff
// CLI. It prints the operations a patch records, one per line.
func NewInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PATCH",
		Short: "Print the operations recorded in a patch",
		Long: `Print the control index and payload of PATCH.

The output lists the format version, removed names, moves, and the
entries the patch carries in full. Move sources are not checked against
any old archive, so a patch that inspects cleanly can still fail to
apply.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := jardiff.InspectPatch(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.Version)
			for _, name := range info.Removes {
				fmt.Fprintf(out, "remove %s\n", name)
			}
			for _, mv := range info.Moves {
				fmt.Fprintf(out, "move %s -> %s\n", mv.From, mv.To)
			}
			for _, name := range info.Payload {
				fmt.Fprintf(out, "add %s\n", name)
			}
			return nil
		},
	}
}
