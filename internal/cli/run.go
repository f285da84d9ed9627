package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codex-k8s/calcctl/internal/ghoutput"
	"github.com/codex-k8s/calcctl/internal/tape"
)

// newRunCommand creates the "run" subcommand that replays key tapes.
func newRunCommand(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [PATH...]",
		Short: "Replay key tapes and check their expected displays",
		Long:  "Replays each tape on a fresh calculator. PATH may be a tape file or a directory of *.yaml tapes; without arguments CALCCTL_TAPE_DIR is used.",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := LoggerFromContext(cmd.Context())

			paths := args
			if len(paths) == 0 {
				paths = []string{opts.Config.TapeDir}
			}

			tapes, err := tape.LoadPaths(opts.Fs, paths)
			if err != nil {
				return err
			}
			if len(tapes) == 0 {
				return fmt.Errorf("no tapes found in %s", strings.Join(paths, ", "))
			}
			logger.Debug("tapes loaded", "count", len(tapes))

			results, runErr := tape.NewRunner(logger).RunAll(cmd.Context(), tapes)
			if runErr != nil && !tape.IsMismatchError(runErr) {
				return runErr
			}

			passed := 0
			for _, res := range results {
				if res.Passed() {
					passed++
				}
				if err := writeResult(cmd.OutOrStdout(), res); err != nil {
					return err
				}
			}

			outputs := map[string]string{
				"tapes":  strconv.Itoa(len(results)),
				"passed": strconv.Itoa(passed),
				"failed": strconv.Itoa(len(results) - passed),
			}
			if err := ghoutput.WriteFile(opts.Fs, strings.TrimSpace(opts.Environ[ghoutput.PathVar]), outputs); err != nil {
				return errors.Join(runErr, err)
			}

			return runErr
		},
	}

	return cmd
}

func writeResult(w io.Writer, res *tape.Result) error {
	status := "PASS"
	if !res.Passed() {
		status = "FAIL"
	}
	if _, err := fmt.Fprintf(w, "%s %s [%s] display=%s\n", status, res.Tape.Name, res.Digest, res.Display); err != nil {
		return err
	}
	for _, m := range res.Mismatches {
		if _, err := fmt.Fprintf(w, "  %s\n", m); err != nil {
			return err
		}
	}
	return nil
}
