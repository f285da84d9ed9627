package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codex-k8s/calcctl/internal/env"
	"github.com/codex-k8s/calcctl/internal/tape"
)

type harness struct {
	fs      afero.Fs
	environ env.Vars
	stdin   string
}

func newHarness() *harness {
	return &harness{fs: afero.NewMemMapFs(), environ: env.Vars{}}
}

func (h *harness) execute(args ...string) (string, string, error) {
	opts := &Options{Fs: h.fs, Environ: h.environ}
	cmd := newRootCommand(opts, nil)

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(h.stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func (h *harness) writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(h.fs, path, []byte(content), 0o644))
}

func TestPress(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"press", "7", "+", "3", "="}, "10\n"},
		{[]string{"press", "6×7="}, "42\n"},
		{[]string{"press", "5", "/", "0", "="}, "Infinity\n"},
		{[]string{"press", "5", "%"}, "0.05\n"},
		{[]string{"press", "9", "+/-"}, "-9\n"},
		{[]string{"press", "2+3+4="}, "9\n"},
	}

	for _, tt := range tests {
		out, _, err := newHarness().execute(tt.args...)
		require.NoError(t, err, tt.args)
		assert.Equal(t, tt.want, out, tt.args)
	}
}

func TestPressAlignUsesConfiguredWidth(t *testing.T) {
	h := newHarness()
	h.environ["CALCCTL_DISPLAY_WIDTH"] = "5"

	out, _, err := h.execute("press", "--align", "42")
	require.NoError(t, err)
	assert.Equal(t, "   42\n", out)
}

func TestPressTraceLogsEveryKey(t *testing.T) {
	out, errOut, err := newHarness().execute("press", "--trace", "7+3=")
	require.NoError(t, err)

	assert.Equal(t, "10\n", out)
	assert.Equal(t, 4, strings.Count(errOut, "key pressed"))
	assert.Contains(t, errOut, "= -> 10")
}

func TestPressUnknownKey(t *testing.T) {
	_, _, err := newHarness().execute("press", "7", "^", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestPressRequiresKeys(t *testing.T) {
	_, _, err := newHarness().execute("press")
	assert.Error(t, err)
}

func TestEnvFileFlag(t *testing.T) {
	h := newHarness()
	h.writeFile(t, "/calc.env", "CALCCTL_DISPLAY_WIDTH=4\n")

	out, _, err := h.execute("--env-file", "/calc.env", "press", "--align", "1")
	require.NoError(t, err)
	assert.Equal(t, "   1\n", out)
}

func TestLogLevelFlagOverridesConfig(t *testing.T) {
	h := newHarness()
	h.environ["CALCCTL_LOG_LEVEL"] = "error"

	_, errOut, err := h.execute("--log-level", "debug", "press", "1")
	require.NoError(t, err)
	assert.Contains(t, errOut, "logger initialized")

	_, errOut, err = h.execute("press", "1")
	require.NoError(t, err)
	assert.NotContains(t, errOut, "logger initialized")
}

func TestRepl(t *testing.T) {
	h := newHarness()
	h.environ["CALCCTL_DISPLAY_WIDTH"] = "0"
	h.stdin = "7 +\n3\n\n=\n7 ^\n+ .\nquit\n9\n"

	out, _, err := h.execute("repl", "-q")
	require.NoError(t, err)

	want := strings.Join([]string{
		"7",
		"3",
		"10",
		`error: unknown key: "^" in "^"`,
		"10.",
		"",
	}, "\n")
	assert.Equal(t, want, out)
}

func TestReplAcceptsLongLines(t *testing.T) {
	h := newHarness()
	h.environ["CALCCTL_DISPLAY_WIDTH"] = "0"
	long := strings.Repeat("1", 70*1024)
	h.stdin = long + "\nC\n7 + 3 ="

	out, _, err := h.execute("repl", "-q")
	require.NoError(t, err)
	assert.Equal(t, long+"\n0\n10\n", out)
}

func TestReplPromptAndKeypad(t *testing.T) {
	h := newHarness()
	h.environ["CALCCTL_PROMPT"] = "calc> "
	h.environ["CALCCTL_DISPLAY_WIDTH"] = "3"
	h.stdin = "12\n"

	out, _, err := h.execute("repl", "--keypad")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "|                      0|\n+-----+"), out)
	assert.True(t, strings.HasSuffix(out, "calc>  12\ncalc> "), out)
}

func TestKeypadCommand(t *testing.T) {
	out, _, err := newHarness().execute("keypad")
	require.NoError(t, err)
	assert.Contains(t, out, "|  C  |  ±  |  %  |  ÷  |")
	assert.Contains(t, out, "|     0     |  .  |  =  |")
}

func TestRunTapes(t *testing.T) {
	h := newHarness()
	h.environ["GITHUB_OUTPUT"] = "/gh-output"
	h.writeFile(t, "/tapes/add.yaml", "name: add\nsteps:\n  - keys: \"7 + 3 =\"\n    expect: \"10\"\n")
	h.writeFile(t, "/tapes/mul.yaml", "steps:\n  - keys: \"6 × 7 =\"\n    expect: \"42\"\n")

	out, _, err := h.execute("run", "/tapes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "PASS add ["), lines[0])
	assert.True(t, strings.HasSuffix(lines[0], "] display=10"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "PASS mul ["), lines[1])

	data, err := afero.ReadFile(h.fs, "/gh-output")
	require.NoError(t, err)
	assert.Equal(t, "failed=0\npassed=2\ntapes=2\n", string(data))
}

func TestRunDefaultsToConfiguredTapeDir(t *testing.T) {
	h := newHarness()
	h.environ["CALCCTL_TAPE_DIR"] = "/srv/tapes"
	h.writeFile(t, "/srv/tapes/percent.yml", "steps:\n  - keys: \"5 %\"\n    expect: \"0.05\"\n")

	out, _, err := h.execute("run")
	require.NoError(t, err)
	assert.Contains(t, out, "PASS percent")
}

func TestRunReportsFailures(t *testing.T) {
	h := newHarness()
	h.writeFile(t, "/bad.yaml", "name: bad\nsteps:\n  - keys: \"9 ±\"\n    expect: \"9\"\n")

	out, _, err := h.execute("run", "/bad.yaml")
	require.Error(t, err)
	assert.True(t, tape.IsMismatchError(err))
	assert.Contains(t, out, "FAIL bad [")
	assert.Contains(t, out, `  step 1 (9 ±): want "9", got "-9"`)
}

func TestRunWithoutTapes(t *testing.T) {
	h := newHarness()
	require.NoError(t, h.fs.MkdirAll("/empty", 0o755))

	_, _, err := h.execute("run", "/empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tapes found")
}

func TestRunInvalidTape(t *testing.T) {
	h := newHarness()
	h.writeFile(t, "/broken.yaml", "steps: []\n")

	_, _, err := h.execute("run", "/broken.yaml")
	require.ErrorIs(t, err, tape.ErrInvalidTape)
}

func TestRunBundledTapes(t *testing.T) {
	h := newHarness()
	h.fs = afero.NewReadOnlyFs(afero.NewOsFs())

	out, _, err := h.execute("run", "../../tapes")
	require.NoError(t, err, out)
	assert.Equal(t, 3, strings.Count(out, "PASS "), out)
}
