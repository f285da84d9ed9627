// Package config loads calcctl runtime settings from CALCCTL_* variables.
package config

import (
	"fmt"
	"strings"

	envparse "github.com/caarlos0/env/v11"
	"github.com/spf13/afero"

	"github.com/codex-k8s/calcctl/internal/env"
)

// EnvFileVar names the variable listing .env files to load.
const EnvFileVar = "CALCCTL_ENV_FILE"

// Config holds settings shared by all commands.
type Config struct {
	// LogLevel is the logging level from CALCCTL_LOG_LEVEL.
	LogLevel string `env:"CALCCTL_LOG_LEVEL" envDefault:"info"`
	// DisplayWidth is the rendered display width from CALCCTL_DISPLAY_WIDTH.
	// Zero disables alignment and truncation.
	DisplayWidth int `env:"CALCCTL_DISPLAY_WIDTH" envDefault:"16"`
	// TapeDir is the default tape location for "run" from CALCCTL_TAPE_DIR.
	TapeDir string `env:"CALCCTL_TAPE_DIR" envDefault:"tapes"`
	// Prompt is the repl prompt from CALCCTL_PROMPT.
	Prompt string `env:"CALCCTL_PROMPT" envDefault:"> "`
	// EnvFiles lists .env files from CALCCTL_ENV_FILE.
	EnvFiles []string `env:"CALCCTL_ENV_FILE" envSeparator:","`
}

// LoadOptions describes where configuration values come from.
type LoadOptions struct {
	// Fs is used to read env files. Defaults to the OS filesystem.
	Fs afero.Fs
	// BaseDir resolves relative env file paths.
	BaseDir string
	// EnvFiles are loaded in order; when empty, CALCCTL_ENV_FILE is used.
	EnvFiles []string
	// Environ is the process environment. Defaults to the OS environment.
	Environ env.Vars
}

// Load builds a Config. Variables from env files are layered under the
// process environment, so exported variables win.
func Load(opts LoadOptions) (*Config, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	environ := opts.Environ
	if environ == nil {
		environ = env.FromOS()
	}

	files := opts.EnvFiles
	if len(files) == 0 {
		if raw := strings.TrimSpace(environ[EnvFileVar]); raw != "" {
			files = strings.Split(raw, ",")
		}
	}

	fileVars, err := env.LoadEnvFiles(fs, opts.BaseDir, files)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := envparse.ParseWithOptions(&cfg, envparse.Options{
		Environment: env.Merge(fileVars, environ),
	}); err != nil {
		return nil, fmt.Errorf("parse CALCCTL_* variables: %w", err)
	}
	if len(cfg.EnvFiles) == 0 {
		cfg.EnvFiles = files
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.DisplayWidth < 0 {
		return fmt.Errorf("CALCCTL_DISPLAY_WIDTH must not be negative, got %d", c.DisplayWidth)
	}
	return nil
}
