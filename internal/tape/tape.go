// Package tape loads and replays key tapes: YAML scripts of button presses
// with optional expected displays.
package tape

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/codex-k8s/calcctl/internal/keypad"
)

// ErrInvalidTape marks tapes that cannot be replayed.
var ErrInvalidTape = errors.New("invalid tape")

// Tape is a named sequence of key presses.
type Tape struct {
	// Name identifies the tape in reports. It defaults to the file name.
	Name string `yaml:"name"`
	// Description is free-form text shown in debug logs.
	Description string `yaml:"description,omitempty"`
	// Steps are replayed in order on a fresh calculator.
	Steps []Step `yaml:"steps"`
	// Path is the file the tape was loaded from, if any.
	Path string `yaml:"-"`
}

// Step is one line of keys, optionally followed by a display check.
type Step struct {
	// Keys holds key tokens in the keypad.Split syntax.
	Keys string `yaml:"keys"`
	// Expect is the display required after the keys are pressed.
	Expect *string `yaml:"expect,omitempty"`
}

// Parse decodes and validates a tape document.
func Parse(data []byte) (*Tape, error) {
	var t Tape
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: decode yaml: %w", ErrInvalidTape, err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate checks that the tape has steps and that every step parses.
func (t *Tape) Validate() error {
	if len(t.Steps) == 0 {
		return fmt.Errorf("%w: no steps", ErrInvalidTape)
	}
	for i, step := range t.Steps {
		if strings.TrimSpace(step.Keys) == "" && step.Expect == nil {
			return fmt.Errorf("%w: step %d is empty", ErrInvalidTape, i+1)
		}
		if _, err := keypad.Split(step.Keys); err != nil {
			return fmt.Errorf("%w: step %d: %w", ErrInvalidTape, i+1, err)
		}
	}
	return nil
}

// Keys returns all keys of the tape in press order.
func (t *Tape) Keys() ([]keypad.Key, error) {
	var keys []keypad.Key
	for i, step := range t.Steps {
		stepKeys, err := keypad.Split(step.Keys)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %w", ErrInvalidTape, i+1, err)
		}
		keys = append(keys, stepKeys...)
	}
	return keys, nil
}

// Load reads a tape file from fs.
func Load(fs afero.Fs, path string) (*Tape, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read tape %q: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load tape %q: %w", path, err)
	}
	t.Path = path
	if strings.TrimSpace(t.Name) == "" {
		t.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return t, nil
}

// LoadDir loads every *.yaml and *.yml file in dir, sorted by file name.
func LoadDir(fs afero.Fs, dir string) ([]*Tape, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, fmt.Errorf("read tape dir %q: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !isTapeFile(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	tapes := make([]*Tape, 0, len(names))
	for _, name := range names {
		t, err := Load(fs, filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		tapes = append(tapes, t)
	}
	return tapes, nil
}

// LoadPaths loads tapes from a mix of files and directories.
func LoadPaths(fs afero.Fs, paths []string) ([]*Tape, error) {
	var tapes []*Tape
	for _, path := range paths {
		isDir, err := afero.IsDir(fs, path)
		if err != nil {
			return nil, fmt.Errorf("stat %q: %w", path, err)
		}
		if isDir {
			dirTapes, err := LoadDir(fs, path)
			if err != nil {
				return nil, err
			}
			tapes = append(tapes, dirTapes...)
			continue
		}
		t, err := Load(fs, path)
		if err != nil {
			return nil, err
		}
		tapes = append(tapes, t)
	}
	return tapes, nil
}

func isTapeFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}
