package tape

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const additionTape = `name: addition
description: seven plus three
steps:
  - keys: "7 + 3"
  - keys: "="
    expect: "10"
`

func writeFile(t *testing.T, fs afero.Fs, path, content string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
}

func TestParse(t *testing.T) {
	tp, err := Parse([]byte(additionTape))
	require.NoError(t, err)

	assert.Equal(t, "addition", tp.Name)
	assert.Equal(t, "seven plus three", tp.Description)
	require.Len(t, tp.Steps, 2)
	assert.Nil(t, tp.Steps[0].Expect)
	require.NotNil(t, tp.Steps[1].Expect)
	assert.Equal(t, "10", *tp.Steps[1].Expect)
}

func TestParseRejectsInvalidTapes(t *testing.T) {
	tests := map[string]string{
		"no steps":    "name: empty\n",
		"bad yaml":    "steps: [\n",
		"unknown key": "steps:\n  - keys: \"7 ^ 3\"\n",
		"empty step":  "steps:\n  - keys: \"\"\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidTape)
		})
	}
}

func TestParseAllowsExpectOnlyStep(t *testing.T) {
	tp, err := Parse([]byte("steps:\n  - expect: \"0\"\n"))
	require.NoError(t, err)

	keys, err := tp.Keys()
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestLoadDefaultsNameToFileName(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tapes/percent.yaml", "steps:\n  - keys: \"5 %\"\n    expect: \"0.05\"\n")

	tp, err := Load(fs, "/tapes/percent.yaml")
	require.NoError(t, err)
	assert.Equal(t, "percent", tp.Name)
	assert.Equal(t, "/tapes/percent.yaml", tp.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nope.yaml")
}

func TestLoadDirSortsAndFilters(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tapes/b.yml", "steps:\n  - keys: \"2\"\n")
	writeFile(t, fs, "/tapes/a.yaml", "steps:\n  - keys: \"1\"\n")
	writeFile(t, fs, "/tapes/notes.txt", "not a tape")
	require.NoError(t, fs.MkdirAll("/tapes/nested", 0o755))

	tapes, err := LoadDir(fs, "/tapes")
	require.NoError(t, err)
	require.Len(t, tapes, 2)
	assert.Equal(t, "a", tapes[0].Name)
	assert.Equal(t, "b", tapes[1].Name)
}

func TestLoadPathsMixesFilesAndDirs(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/tapes/a.yaml", "steps:\n  - keys: \"1\"\n")
	writeFile(t, fs, "/extra/add.yaml", additionTape)

	tapes, err := LoadPaths(fs, []string{"/extra/add.yaml", "/tapes"})
	require.NoError(t, err)
	require.Len(t, tapes, 2)
	assert.Equal(t, "addition", tapes[0].Name)
	assert.Equal(t, "a", tapes[1].Name)
}

func TestLoadPathsMissing(t *testing.T) {
	_, err := LoadPaths(afero.NewMemMapFs(), []string{"/missing"})
	require.Error(t, err)
}

func TestDigestIgnoresSpelling(t *testing.T) {
	joined, err := Parse([]byte("steps:\n  - keys: \"12+3=\"\n"))
	require.NoError(t, err)
	spaced, err := Parse([]byte("steps:\n  - keys: \"1 2\"\n  - keys: \"+ 3 enter\"\n"))
	require.NoError(t, err)
	other, err := Parse([]byte("steps:\n  - keys: \"1 2 + 4 =\"\n"))
	require.NoError(t, err)

	assert.Equal(t, mustDigest(t, joined), mustDigest(t, spaced))
	assert.NotEqual(t, mustDigest(t, joined), mustDigest(t, other))
}

func mustDigest(t *testing.T, tp *Tape) string {
	t.Helper()
	digest, err := Digest(tp)
	require.NoError(t, err)
	return digest
}

func TestDigestRejectsUnvalidatedBadSteps(t *testing.T) {
	tp := &Tape{Name: "raw", Steps: []Step{{Keys: "1 +"}, {Keys: "2 ^"}}}

	_, err := Digest(tp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidTape)
	assert.Contains(t, err.Error(), "step 2")

	_, err = tp.Keys()
	assert.ErrorIs(t, err, ErrInvalidTape)
}
