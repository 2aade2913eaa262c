package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"witnessguide/diagnostics"
	"witnessguide/property"
	"witnessguide/witness"
)

func newCheckCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check <witness-file>",
		Short: "Load a witness file and print its properties, error function, and replay summary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd.OutOrStdout())
		},
	}
}

func runCheck(opts *RootOptions, path string, out io.Writer) error {
	logger := newLogger(opts)
	sink := diagnostics.HCLogSink{Logger: logger}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("witnessguide: %w", err)
	}

	w, err := loadForDialect(opts, data, sink)
	if err != nil {
		return fmt.Errorf("witnessguide: failed to load %s: %w", path, err)
	}

	printSummary(out, w, opts, logger)
	return nil
}

func loadForDialect(opts *RootOptions, data []byte, sink diagnostics.Sink) (*witness.Witness, error) {
	switch opts.Dialect {
	case "graph":
		return witness.LoadWithDialect(data, witness.DialectGraph, sink)
	case "sequence":
		return witness.LoadWithDialect(data, witness.DialectSequence, sink)
	default:
		return witness.Load(data, sink)
	}
}

func printSummary(out io.Writer, w *witness.Witness, opts *RootOptions, logger hclog.Logger) {
	fmt.Fprintf(out, "dialect: %s\n", w.Dialect())
	fmt.Fprintf(out, "properties: %s\n", formatProperties(w.Properties()))
	if fn := w.ErrorFunction(); fn != "" {
		fmt.Fprintf(out, "error-function: %s\n", fn)
	}
	fmt.Fprintf(out, "deterministic: %t\n", w.Deterministic())

	effectiveRefutation := opts.Refutation && w.RefutationEnabled()
	fmt.Fprintf(out, "refutation-enabled: %t\n", effectiveRefutation)
	if opts.Refutation && !w.RefutationEnabled() {
		logger.Warn("refutation disabled by the witness itself (offset attributes or non-\\result assumption text)")
	}
}

var allProperties = []property.Property{
	property.ValidFree,
	property.ValidDeref,
	property.ValidMemtrack,
	property.ValidMemcleanup,
	property.Termination,
	property.NoOverflow,
	property.UnreachCall,
}

func formatProperties(set property.Set) string {
	if set.Empty() {
		return "(none)"
	}
	out := ""
	for _, p := range allProperties {
		if !set.Has(p) {
			continue
		}
		if out != "" {
			out += ","
		}
		out += p.String()
	}
	return out
}
