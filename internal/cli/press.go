package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/calcctl/internal/engine"
	"github.com/codex-k8s/calcctl/internal/keypad"
	"github.com/codex-k8s/calcctl/internal/logging"
	"github.com/codex-k8s/calcctl/internal/render"
)

// newPressCommand creates the "press" subcommand that presses keys on a fresh calculator.
func newPressCommand(opts *Options) *cobra.Command {
	var align, trace bool

	cmd := &cobra.Command{
		Use:   "press KEY...",
		Short: "Press keys on a fresh calculator and print the display",
		Example: `  calcctl press 7 + 3 =
  calcctl press "12+3="
  calcctl press 5 % --trace`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := keypad.Split(strings.Join(args, " "))
			if err != nil {
				return err
			}

			var traceOut io.Writer = io.Discard
			if trace {
				traceOut = logging.NewWriter(LoggerFromContext(cmd.Context()), "key pressed")
			}

			calc := engine.New()
			for _, k := range keys {
				keypad.Press(calc, k)
				if _, err := fmt.Fprintf(traceOut, "%s -> %s\n", k.Label(), calc.Display()); err != nil {
					return err
				}
			}

			display := calc.Display()
			if align {
				display = render.Display(display, opts.Config.DisplayWidth)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), display)
			return err
		},
	}

	cmd.Flags().BoolVar(&align, "align", false, "Right-align the display to CALCCTL_DISPLAY_WIDTH")
	cmd.Flags().BoolVar(&trace, "trace", false, "Log the display after every key")

	return cmd
}
