// Package witness is the executor-facing root of the module (spec §6): it
// wires the two dialect loaders, the normalizer, and the matcher together
// behind three operations — Load, Properties/ErrorFunction, and Advance —
// so a symbolic-execution engine never has to import graph, sequence or
// normalize directly (it still builds a matcher.Cursor for Advance).
package witness

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"witnessguide/constraint"
	"witnessguide/diagnostics"
	"witnessguide/doc"
	"witnessguide/graph"
	"witnessguide/matcher"
	"witnessguide/normalize"
	"witnessguide/property"
	"witnessguide/sequence"
)

// Dialect identifies which of the two witness input formats a Witness was
// loaded from.
type Dialect int

const (
	DialectGraph Dialect = iota
	DialectSequence
)

func (d Dialect) String() string {
	if d == DialectSequence {
		return "sequence"
	}
	return "graph"
}

// ErrWrongDialect is returned by a dialect-specific query (ReplayValue,
// SwitchValue, ...) invoked on a Witness loaded from the other dialect.
var ErrWrongDialect = errors.New("witness: query not supported by this witness's dialect")

// Witness owns exactly one of the two dialect bodies plus the matcher that
// drives it, per spec §3's data model: a graph automaton with its extracted
// replay tape, or a waypoint-sequence chain.
type Witness struct {
	dialect Dialect

	automaton     *graph.Automaton
	graphMatcher  *matcher.GraphMatcher
	deterministic bool

	seq        *sequence.Witness
	seqMatcher *matcher.SequenceMatcher
}

// Load detects the witness dialect by sniffing the leading non-space byte
// (GraphML starts with '<'; the waypoint-sequence dialect is YAML) and
// dispatches to the matching loader. Fatal diagnostics are reported to sink
// and surfaced as a non-nil error, per spec §6's "fatal on malformed input".
func Load(data []byte, sink diagnostics.Sink) (*Witness, error) {
	if looksLikeXML(data) {
		return loadGraph(data, sink)
	}
	return loadSequence(data, sink)
}

// LoadWithDialect loads data as the given dialect, bypassing the sniffing
// Load performs; it backs the CLI's --dialect override flag for a witness
// document whose leading bytes are ambiguous or which needs forcing past a
// misdetection.
func LoadWithDialect(data []byte, dialect Dialect, sink diagnostics.Sink) (*Witness, error) {
	if dialect == DialectSequence {
		return loadSequence(data, sink)
	}
	return loadGraph(data, sink)
}

// LoadFile reads path and loads it, per spec §6's "load(path) → Witness"
// entry point. Nothing in this module calls it: cmd/witnessguide reads the
// file itself so it can apply its --dialect override.
func LoadFile(path string, sink diagnostics.Sink) (*Witness, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		sink.Fatal(diagnostics.Structural, "%v", err)
		return nil, fmt.Errorf("witness: %w", err)
	}
	return Load(data, sink)
}

func looksLikeXML(data []byte) bool {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '<'
}

func loadGraph(data []byte, sink diagnostics.Sink) (*Witness, error) {
	root, err := doc.ParseXML(data)
	if err != nil {
		sink.Fatal(diagnostics.Structural, "%v", err)
		return nil, err
	}
	automaton, err := graph.Load(root, sink)
	if err != nil {
		return nil, err
	}

	tape, deterministic := normalize.Normalize(automaton)

	return &Witness{
		dialect:       DialectGraph,
		automaton:     automaton,
		graphMatcher:  matcher.NewGraphMatcher(automaton, tape),
		deterministic: deterministic,
	}, nil
}

func loadSequence(data []byte, sink diagnostics.Sink) (*Witness, error) {
	root, err := doc.ParseYAML(data)
	if err != nil {
		sink.Fatal(diagnostics.Structural, "%v", err)
		return nil, err
	}
	w, err := sequence.Load(root, sink)
	if err != nil {
		return nil, err
	}

	return &Witness{
		dialect:    DialectSequence,
		seq:        w,
		seqMatcher: matcher.NewSequenceMatcher(w, sink),
	}, nil
}

// Dialect reports which input format this Witness was loaded from.
func (w *Witness) Dialect() Dialect { return w.dialect }

// Properties returns the set of safety properties the witness's
// specification string asserted at load time.
func (w *Witness) Properties() property.Set {
	if w.dialect == DialectGraph {
		return w.automaton.Properties
	}
	return w.seq.Properties
}

// ErrorFunction returns the designated error-function identifier for a
// reachability property, or "" if none was extracted.
func (w *Witness) ErrorFunction() string {
	if w.dialect == DialectGraph {
		return w.automaton.ErrorFunction
	}
	return w.seq.ErrorFunction
}

// Deterministic reports whether a single replay trace was extracted (graph
// dialect only, per spec §4.6); the sequence dialect has no replay concept
// and is always reported deterministic.
func (w *Witness) Deterministic() bool {
	if w.dialect == DialectGraph {
		return w.deterministic
	}
	return true
}

// RefutationEnabled reports the loader's refute_witness configuration field
// (spec §9); always true for the sequence dialect, which never sets it.
func (w *Witness) RefutationEnabled() bool {
	if w.dialect == DialectGraph {
		return w.automaton.RefutationEnabled
	}
	return true
}

// Advance steps the witness's matcher with the executor's current
// instruction, per spec §6's "advance" hook.
func (w *Witness) Advance(c matcher.Cursor) (matcher.StepResult, error) {
	if w.dialect == DialectGraph {
		return w.graphMatcher.Step(c)
	}
	return w.seqMatcher.Step(c)
}

// ReplayValue draws the next concrete non-deterministic value off the
// graph dialect's replay tape; it is ErrWrongDialect for a sequence
// witness, which carries no tape.
func (w *Witness) ReplayValue(function string, line int) (constraint.Value, error) {
	if w.dialect != DialectGraph {
		return constraint.Value{}, ErrWrongDialect
	}
	return w.graphMatcher.ReplayValue(function, line)
}

// CheckAvoid reports which of the active segment's avoid waypoints match c;
// it is ErrWrongDialect for a graph witness, which has no avoid waypoints.
func (w *Witness) CheckAvoid(c matcher.Cursor) ([]int, error) {
	if w.dialect != DialectSequence {
		return nil, ErrWrongDialect
	}
	return w.seqMatcher.CheckAvoid(c), nil
}

// ConditionConstraint reports (may_take_true, may_take_false) for a branch
// at (line, col) in the active segment; it is ErrWrongDialect for a graph
// witness, which never constrains branch direction (spec §4.7.3).
func (w *Witness) ConditionConstraint(line, col int) (mayTrue, mayFalse bool, err error) {
	if w.dialect != DialectSequence {
		return false, false, ErrWrongDialect
	}
	return w.seqMatcher.ConditionConstraint(line, col)
}

// ReturnConstraint builds the active segment's return predicate over left;
// it is ErrWrongDialect for a graph witness.
func (w *Witness) ReturnConstraint(left constraint.Expr) (constraint.Predicate, error) {
	if w.dialect != DialectSequence {
		return constraint.Predicate{}, ErrWrongDialect
	}
	return w.seqMatcher.ReturnConstraint(left)
}

// SwitchValue decimal-parses the active segment's switch constraint; it is
// ErrWrongDialect for a graph witness.
func (w *Witness) SwitchValue() (int64, error) {
	if w.dialect != DialectSequence {
		return 0, ErrWrongDialect
	}
	return w.seqMatcher.SwitchValue()
}

// MatchTarget reports whether (line, col) falls within the active
// segment's target range; it is ErrWrongDialect for a graph witness.
func (w *Witness) MatchTarget(line, col int) (bool, error) {
	if w.dialect != DialectSequence {
		return false, ErrWrongDialect
	}
	return w.seqMatcher.MatchTarget(line, col), nil
}

// Done reports whether the sequence dialect has consumed every segment; it
// is always false for a graph witness, which has no terminal "done" state
// distinct from reaching a violation node.
func (w *Witness) Done() bool {
	if w.dialect != DialectSequence {
		return false
	}
	return w.seq.Done()
}
