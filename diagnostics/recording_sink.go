package diagnostics

import "fmt"

// Entry is a single reported diagnostic, as captured by RecordingSink.
type Entry struct {
	Kind    Kind
	Message string
}

// RecordingSink is a test double that records every diagnostic instead of
// logging it, so tests can assert on exactly what was reported without any
// log-output scraping.
type RecordingSink struct {
	Fatals []Entry
	Warns  []Entry
}

func (s *RecordingSink) Fatal(kind Kind, format string, args ...any) {
	s.Fatals = append(s.Fatals, Entry{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

func (s *RecordingSink) Warn(kind Kind, format string, args ...any) {
	s.Warns = append(s.Warns, Entry{Kind: kind, Message: fmt.Sprintf(format, args...)})
}

// HasFatal reports whether any fatal diagnostic of the given kind was recorded.
func (s *RecordingSink) HasFatal(kind Kind) bool {
	for _, e := range s.Fatals {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
