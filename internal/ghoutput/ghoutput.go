// Package ghoutput publishes step outputs for GitHub Actions.
package ghoutput

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/afero"
)

// PathVar is the variable GitHub Actions sets to the step output file.
const PathVar = "GITHUB_OUTPUT"

// WriteFile appends key=value lines to path, normally the value of
// GITHUB_OUTPUT, in key order. An empty path or value set is a no-op.
func WriteFile(fs afero.Fs, path string, values map[string]string) error {
	if path == "" || len(values) == 0 {
		return nil
	}

	f, err := fs.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open %s: %w", PathVar, err)
	}
	defer func() { _ = f.Close() }()

	keys := make([]string, 0, len(values))
	for k := range values {
		if strings.TrimSpace(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if _, err := fmt.Fprintf(f, "%s=%s\n", key, sanitize(values[key])); err != nil {
			return fmt.Errorf("write %s: %w", PathVar, err)
		}
	}
	return nil
}

func sanitize(value string) string {
	value = strings.ReplaceAll(value, "%", "%25")
	value = strings.ReplaceAll(value, "\r", "%0D")
	value = strings.ReplaceAll(value, "\n", "%0A")
	return value
}
