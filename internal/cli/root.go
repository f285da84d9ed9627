// Package cli defines the command-line interface for calcctl.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/codex-k8s/calcctl/internal/config"
	"github.com/codex-k8s/calcctl/internal/env"
	"github.com/codex-k8s/calcctl/internal/logging"
)

// Options stores global CLI options shared between commands.
type Options struct {
	// EnvFiles are .env files given with --env-file.
	EnvFiles []string
	// LogLevel is the --log-level flag value.
	LogLevel string
	// Fs is the filesystem used for env files, tapes and outputs.
	Fs afero.Fs
	// Environ is the process environment; nil means the OS environment.
	Environ env.Vars
	// Config is populated before any subcommand runs.
	Config *config.Config
}

// Execute builds the root command, runs it with the provided args and logger, and returns any error.
func Execute(args []string, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.NewLogger(os.Stderr, logging.LevelInfo)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCommand(&Options{Fs: afero.NewOsFs()}, logger)
	rootCmd.SetArgs(args)

	return rootCmd.ExecuteContext(ctx)
}

// newRootCommand constructs the root cobra.Command with global flags and subcommands.
func newRootCommand(opts *Options, logger *slog.Logger) *cobra.Command {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}

	cmd := &cobra.Command{
		Use:           "calcctl",
		Short:         "calcctl is a terminal arithmetic calculator",
		Long:          "calcctl drives a button-press calculator from the terminal: press keys, run an interactive session or replay recorded key tapes.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.Environ == nil {
				opts.Environ = env.FromOS()
			}
			cfg, err := config.Load(config.LoadOptions{
				Fs:       opts.Fs,
				EnvFiles: opts.EnvFiles,
				Environ:  opts.Environ,
			})
			if err != nil {
				return err
			}
			opts.Config = cfg

			levelName := cfg.LogLevel
			if cmd.Flags().Changed("log-level") {
				levelName = opts.LogLevel
			}
			level := logging.ParseLevel(levelName)
			logger = logging.NewLogger(cmd.ErrOrStderr(), level)
			cmd.SetContext(context.WithValue(cmd.Context(), loggerKey{}, logger))
			logger.Debug("logger initialized", "level", level, "envFiles", cfg.EnvFiles)
			return nil
		},
	}

	cmd.PersistentFlags().StringSliceVar(&opts.EnvFiles, "env-file", nil, "Path to a .env file with CALCCTL_* settings (repeatable)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(
		newPressCommand(opts),
		newReplCommand(opts),
		newRunCommand(opts),
		newKeypadCommand(),
	)

	return cmd
}

// loggerKey is a private context key used to store a logger in command contexts.
type loggerKey struct{}

// LoggerFromContext extracts a logger from the context or falls back to a default logger.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return logging.NewLogger(os.Stderr, logging.LevelInfo)
	}
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && l != nil {
		return l
	}
	return logging.NewLogger(os.Stderr, logging.LevelInfo)
}
