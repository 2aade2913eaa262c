package diagnostics

import "log"

// LogSink is the default Sink, built on the standard log package — the
// teacher codebase reports unrecoverable conditions the same way
// (log.Panicf in runner.go, log.Printf in the scheduler wiring), synchronously
// on the caller's goroutine with no internal buffering.
//
// Unlike the original source's process-terminating helper, Fatal here does
// not itself abort: callers always also return a Go error up the stack, and
// it is that error the caller acts on. Fatal's only job is to put a
// human-readable line in the log; which makes this sink safe to use from
// tests that want to observe the log without crashing.
type LogSink struct{}

func (LogSink) Fatal(kind Kind, format string, args ...any) {
	log.Printf("FATAL[%s]: "+format, append([]any{kind}, args...)...)
}

func (LogSink) Warn(kind Kind, format string, args ...any) {
	log.Printf("WARN[%s]: "+format, append([]any{kind}, args...)...)
}
