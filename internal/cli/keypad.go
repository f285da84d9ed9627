package cli

import (
	"github.com/spf13/cobra"

	"github.com/codex-k8s/calcctl/internal/keypad"
	"github.com/codex-k8s/calcctl/internal/render"
)

// newKeypadCommand creates the "keypad" subcommand that prints the button grid.
func newKeypadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keypad",
		Short: "Print the calculator keypad",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return render.Keypad(cmd.OutOrStdout(), keypad.Layout())
		},
	}
}
