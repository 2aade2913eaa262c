package diagnostics

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// HCLogSink adapts an hclog.Logger to Sink, the way cmd/witnessguide wires
// diagnostics into the same structured, leveled logger it uses everywhere
// else — grounded in the retrieval pack's scan-io-git-scan-io, whose
// internal/logger package constructs a single named hclog.Logger in main
// and threads it down into every subsystem.
type HCLogSink struct {
	Logger hclog.Logger
}

func (s HCLogSink) Fatal(kind Kind, format string, args ...any) {
	s.Logger.Error(fmt.Sprintf(format, args...), "kind", kind.String())
}

func (s HCLogSink) Warn(kind Kind, format string, args ...any) {
	s.Logger.Warn(fmt.Sprintf(format, args...), "kind", kind.String())
}
