// Package cli builds the witnessguide command tree: a cobra root command
// carrying a named hclog.Logger, in the shape of scan-io-git-scan-io's
// cmd/root.go + internal/logger (a single logger constructed once and
// threaded down) and roach88-nysm's per-command RootOptions pattern.
package cli

import (
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

// RootOptions holds the flags every subcommand reads.
type RootOptions struct {
	LogLevel   string
	Dialect    string
	Refutation bool
}

// Execute builds and runs the witnessguide command tree.
func Execute() error {
	opts := &RootOptions{}

	root := &cobra.Command{
		Use:           "witnessguide",
		Short:         "Inspect violation-witness files for a symbolic execution engine",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (trace|debug|info|warn|error)")
	root.PersistentFlags().StringVar(&opts.Dialect, "dialect", "auto", "witness dialect override (auto|graph|sequence)")
	root.PersistentFlags().BoolVar(&opts.Refutation, "refute-witness", true, "enable refutation mode (the witness itself can still disable it)")

	root.AddCommand(newCheckCommand(opts))

	return root.Execute()
}

func newLogger(opts *RootOptions) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:            "witnessguide",
		Level:           parseLogLevel(opts.LogLevel),
		IncludeLocation: false,
	})
}

func parseLogLevel(s string) hclog.Level {
	switch strings.ToUpper(s) {
	case "TRACE":
		return hclog.Trace
	case "DEBUG":
		return hclog.Debug
	case "WARN":
		return hclog.Warn
	case "ERROR":
		return hclog.Error
	default:
		return hclog.Info
	}
}
