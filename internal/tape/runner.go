package tape

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/codex-k8s/calcctl/internal/engine"
	"github.com/codex-k8s/calcctl/internal/keypad"
)

// StepResult records the display after one step.
type StepResult struct {
	Keys    string
	Display string
}

// Mismatch is a step whose display differed from its expectation.
type Mismatch struct {
	// Step is the 1-based step number.
	Step int
	Keys string
	Want string
	Got  string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("step %d (%s): want %q, got %q", m.Step, m.Keys, m.Want, m.Got)
}

// Result is the outcome of replaying one tape.
type Result struct {
	Tape       *Tape
	Digest     string
	Display    string
	Steps      []StepResult
	Mismatches []Mismatch
}

// Passed reports whether every expectation held.
func (r *Result) Passed() bool {
	return len(r.Mismatches) == 0
}

// MismatchError summarises tapes whose expectations failed.
type MismatchError struct {
	// Failed lists the names of the failed tapes.
	Failed []string
}

func (e *MismatchError) Error() string {
	if e == nil || len(e.Failed) == 0 {
		return "tape mismatch"
	}
	return fmt.Sprintf("%d tape(s) failed: %s", len(e.Failed), strings.Join(e.Failed, ", "))
}

// IsMismatchError reports whether err is a MismatchError.
func IsMismatchError(err error) bool {
	var target *MismatchError
	return errors.As(err, &target)
}

// Runner replays tapes on fresh calculators.
type Runner struct {
	logger *slog.Logger
}

// NewRunner constructs a Runner. A nil logger discards log output.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{logger: logger}
}

// Run replays t and collects the display after each step. Expectation
// failures are reported in the result, not as errors. The context is checked
// between steps.
func (r *Runner) Run(ctx context.Context, t *Tape) (*Result, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil tape", ErrInvalidTape)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}

	digest, err := Digest(t)
	if err != nil {
		return nil, err
	}

	res := &Result{Tape: t, Digest: digest}
	calc := engine.New()
	logger := r.logger.With("tape", t.Name)
	if t.Description != "" {
		logger.Debug("replaying tape", "description", t.Description, "steps", len(t.Steps))
	}

	for i, step := range t.Steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("replay tape %q: %w", t.Name, err)
		}

		keys, _ := keypad.Split(step.Keys)
		display := keypad.PressAll(calc, keys)
		res.Steps = append(res.Steps, StepResult{Keys: step.Keys, Display: display})
		logger.Debug("step replayed", "step", i+1, "keys", keypad.Labels(keys), "display", display)

		if step.Expect != nil && *step.Expect != display {
			m := Mismatch{Step: i + 1, Keys: step.Keys, Want: *step.Expect, Got: display}
			res.Mismatches = append(res.Mismatches, m)
			logger.Warn("display mismatch", "step", m.Step, "want", m.Want, "got", m.Got)
		}
	}

	res.Display = calc.Display()
	return res, nil
}

// RunAll replays tapes in order. It returns every result together with a
// *MismatchError when any tape failed.
func (r *Runner) RunAll(ctx context.Context, tapes []*Tape) ([]*Result, error) {
	results := make([]*Result, 0, len(tapes))
	var failed []string
	for _, t := range tapes {
		res, err := r.Run(ctx, t)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if res.Passed() {
			r.logger.Info("tape passed", "tape", t.Name, "digest", res.Digest, "display", res.Display)
		} else {
			r.logger.Error("tape failed", "tape", t.Name, "digest", res.Digest, "mismatches", len(res.Mismatches))
			failed = append(failed, t.Name)
		}
	}
	if len(failed) > 0 {
		return results, &MismatchError{Failed: failed}
	}
	return results, nil
}
