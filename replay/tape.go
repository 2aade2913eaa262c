// Package replay implements the ordered replay tape (C8): a strictly
// in-order, single-consumption producer of concrete non-deterministic
// values, keyed by (function, source line).
package replay

import (
	"errors"

	"witnessguide/constraint"
)

// ErrExhausted is returned once every entry has been consumed.
var ErrExhausted = errors.New("replay: tape exhausted")

// ErrMismatch is returned when the requested (function, line) does not
// match the next entry; the tape is permanently invalidated afterward.
var ErrMismatch = errors.New("replay: function/line mismatch, tape invalidated")

// ErrInvalidated is returned by every call after the tape has been
// invalidated by a mismatch or by running past the end.
var ErrInvalidated = errors.New("replay: tape already invalidated")

// Entry is a single recorded concrete value for one non-deterministic
// call, as produced by the normalizer's forward BFS (spec §4.6).
type Entry struct {
	Function string
	Line     int
	Ordinal  int
	Value    constraint.Value
}

// Tape is an ordered cursor over a fixed list of Entry values. Consumption
// is strictly in order and values are never reused, per spec §4.8. Tape
// carries no lock: the executor owns it for the duration of analysis and
// is single-threaded (spec §5), unlike the teacher's runReplay this is
// grounded on.
type Tape struct {
	entries     []Entry
	index       int
	invalidated bool
}

// New builds a Tape over entries, which must already be ordered by
// start_line as the normalizer produces them.
func New(entries []Entry) *Tape {
	return &Tape{entries: entries}
}

// Len reports how many entries remain unconsumed.
func (t *Tape) Len() int {
	if t.invalidated {
		return 0
	}
	return len(t.entries) - t.index
}

// Valid reports whether the tape has not yet been invalidated.
func (t *Tape) Valid() bool {
	return !t.invalidated
}

// Next consumes and returns the next entry if its function and line match
// the caller's request; otherwise it invalidates the tape and returns an
// error. Once invalidated, every subsequent call fails with ErrInvalidated.
func (t *Tape) Next(function string, line int) (constraint.Value, error) {
	if t.invalidated {
		return constraint.Value{}, ErrInvalidated
	}
	if t.index >= len(t.entries) {
		t.invalidated = true
		return constraint.Value{}, ErrExhausted
	}
	e := t.entries[t.index]
	if e.Function != function || e.Line != line {
		t.invalidated = true
		return constraint.Value{}, ErrMismatch
	}
	t.index++
	return e.Value, nil
}
