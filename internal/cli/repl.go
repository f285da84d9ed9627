package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/calcctl/internal/engine"
	"github.com/codex-k8s/calcctl/internal/keypad"
	"github.com/codex-k8s/calcctl/internal/render"
)

// newReplCommand creates the "repl" subcommand that runs an interactive session.
func newReplCommand(opts *Options) *cobra.Command {
	var quiet, showKeypad bool

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run an interactive calculator session on stdin",
		Long:  "Each input line is split into keys and pressed on one calculator; the display is printed after every line. Type \"keypad\" to show the buttons and \"quit\" to leave.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := &session{
				calc:   engine.New(),
				out:    cmd.OutOrStdout(),
				width:  opts.Config.DisplayWidth,
				prompt: opts.Config.Prompt,
			}
			if quiet {
				s.prompt = ""
			}
			if showKeypad && !quiet {
				if err := render.Screen(s.out, s.calc.Display(), keypad.Layout()); err != nil {
					return err
				}
			}

			logger := LoggerFromContext(cmd.Context())
			logger.Debug("repl started", "width", s.width)
			lines, err := s.run(cmd.InOrStdin())
			logger.Debug("repl finished", "lines", lines, "display", s.calc.Display())
			return err
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Do not print prompts or the keypad")
	cmd.Flags().BoolVar(&showKeypad, "keypad", false, "Print the keypad before the first prompt")

	return cmd
}

// session is one interactive calculator run.
type session struct {
	calc   *engine.Calculator
	out    io.Writer
	width  int
	prompt string
}

// run processes input until EOF or a quit command and returns the number of lines read.
func (s *session) run(in io.Reader) (int, error) {
	reader := bufio.NewReader(in)
	lines := 0
	for {
		if s.prompt != "" {
			if _, err := io.WriteString(s.out, s.prompt); err != nil {
				return lines, err
			}
		}
		// ReadString has no line length limit; a final line may lack '\n'.
		raw, err := reader.ReadString('\n')
		if errors.Is(err, io.EOF) && raw == "" {
			return lines, nil
		}
		if err != nil && !errors.Is(err, io.EOF) {
			return lines, err
		}
		lines++

		line := strings.TrimSpace(raw)
		switch strings.ToLower(line) {
		case "":
			continue
		case "quit", "exit":
			return lines, nil
		case "keypad", "?":
			if err := render.Screen(s.out, s.calc.Display(), keypad.Layout()); err != nil {
				return lines, err
			}
			continue
		}

		keys, err := keypad.Split(line)
		if err != nil {
			if _, werr := fmt.Fprintf(s.out, "error: %v\n", err); werr != nil {
				return lines, werr
			}
			continue
		}
		if _, err := fmt.Fprintln(s.out, render.Display(keypad.PressAll(s.calc, keys), s.width)); err != nil {
			return lines, err
		}
	}
}
