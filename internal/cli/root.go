// Package cli implements the kinetophone command line.
package cli

import (
	"fmt"

	"github.com/hekevintran/kinetophone/internal/config"
	"github.com/hekevintran/kinetophone/internal/logger"
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	ConfigPath string
	Format     string // "text" | "json"
	Duration   int64

	// Config is loaded before any subcommand runs
	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the kinetophone CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "kinetophone",
		Short: "Kinetophone - timed cue playback",
		Long: `Play, render and query timelines of timed cues.

Timelines are read from YAML or JSON declarations, or from SubRip (.srt)
and WebVTT (.vtt) files, each of which becomes one channel.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			cfg, err := config.LoadFrom(opts.ConfigPath)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load configuration", err)
			}
			opts.Config = cfg

			level := cfg.Logging.Level
			if opts.Verbose {
				level = "debug"
			}
			logger.InitWithWriter(cmd.ErrOrStderr(), level, cfg.Logging.Pretty)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default: ./config.yaml if present)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().Int64Var(&opts.Duration, "duration", 0,
		"timeline length in milliseconds (default: declared duration or latest timing end)")

	// Add subcommands
	cmd.AddCommand(NewPlayCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
