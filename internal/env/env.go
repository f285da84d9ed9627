// Package env contains helpers for loading and merging environment variables from multiple sources.
package env

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
)

// Vars represents a simple string-to-string map of variables.
type Vars map[string]string

// FromOS builds a Vars map from the current process environment.
func FromOS() Vars {
	return FromList(os.Environ())
}

// FromList builds Vars from KEY=VALUE entries; malformed entries are skipped.
func FromList(list []string) Vars {
	out := make(Vars, len(list))
	for _, kv := range list {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

// Merge merges several Vars maps into one, later maps overriding earlier keys.
func Merge(sets ...Vars) Vars {
	out := make(Vars)
	for _, s := range sets {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// LoadEnvFile loads a single .env-style file into Vars.
func LoadEnvFile(fs afero.Fs, path string) (Vars, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	envMap, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %q: %w", path, err)
	}
	return Vars(envMap), nil
}

// LoadEnvFiles loads multiple .env-style files and merges them in order.
// Relative paths are resolved against baseDir.
func LoadEnvFiles(fs afero.Fs, baseDir string, files []string) (Vars, error) {
	result := make(Vars)
	for _, name := range files {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		path := name
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, name)
		}
		vars, err := LoadEnvFile(fs, path)
		if err != nil {
			return nil, fmt.Errorf("load env file %q: %w", path, err)
		}
		result = Merge(result, vars)
	}
	return result, nil
}
