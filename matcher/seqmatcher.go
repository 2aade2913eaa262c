package matcher

import (
	"errors"
	"fmt"
	"strconv"

	"witnessguide/constraint"
	"witnessguide/diagnostics"
	"witnessguide/sequence"
)

// ErrNoActiveSegment is returned by ConditionConstraint, ReturnConstraint
// and SwitchValue once the witness has consumed its last segment
// (sequence.Witness.Done()); Step, CheckAvoid and MatchTarget do not
// return it.
var ErrNoActiveSegment = errors.New("matcher: no active segment, witness already done")

// ErrBadConstraintValue is returned when a branch waypoint's constraint is
// neither "true" nor "false".
var ErrBadConstraintValue = errors.New("matcher: unsupported constraint value for branching waypoint")

// SequenceMatcher drives a sequence.Witness's active-segment cursor from
// the instructions the executor visits, per spec §4.7.2.
type SequenceMatcher struct {
	witness *sequence.Witness
	sink    diagnostics.Sink
}

// NewSequenceMatcher wraps a loaded sequence witness for matching.
func NewSequenceMatcher(w *sequence.Witness, sink diagnostics.Sink) *SequenceMatcher {
	return &SequenceMatcher{witness: w, sink: sink}
}

func (m *SequenceMatcher) Step(c Cursor) (StepResult, error) {
	seg := m.witness.Active()
	if seg == nil {
		return StepResult{AllowTrue: true, AllowFalse: true, TargetReached: true}, nil
	}

	mayTrue, mayFalse, err := m.conditionConstraintAt(seg, c.Line, c.Column)
	if err != nil {
		return StepResult{}, err
	}

	targetReached := false
	if matchFollow(seg, c) {
		wasFinal := m.witness.AtFinalSegment()
		isTarget := seg.Follow.Kind == sequence.Target
		m.witness.Advance()
		targetReached = wasFinal && isTarget
	}

	return StepResult{AllowTrue: mayTrue, AllowFalse: mayFalse, TargetReached: targetReached}, nil
}

// matchFollow reports whether c satisfies the active segment's follow
// waypoint: a direct instruction match for Branch/Enter/Return kinds, or a
// range match for Target. An Assume follow never matches.
func matchFollow(seg *sequence.Segment, c Cursor) bool {
	if seg.Follow.Kind == sequence.Target {
		return seg.Follow.MatchTargetRange(c.Line, c.Column)
	}
	return matchWaypoint(seg.Follow, c)
}

// CheckAvoid returns the indices into the active segment's avoid list
// whose waypoints match c (spec §4.7.2): the caller must treat the
// corresponding branch/return as prohibited at this step.
func (m *SequenceMatcher) CheckAvoid(c Cursor) []int {
	seg := m.witness.Active()
	if seg == nil {
		return nil
	}
	var matched []int
	for i, wp := range seg.Avoid {
		if matchWaypoint(wp, c) {
			matched = append(matched, i)
		}
	}
	return matched
}

// ConditionConstraint computes (may_take_true, may_take_false) for a
// branch at (line, col), per spec §4.7.2.
func (m *SequenceMatcher) ConditionConstraint(line, col int) (mayTrue, mayFalse bool, err error) {
	seg := m.witness.Active()
	if seg == nil {
		return false, false, ErrNoActiveSegment
	}
	return m.conditionConstraintAt(seg, line, col)
}

func (m *SequenceMatcher) conditionConstraintAt(seg *sequence.Segment, line, col int) (bool, bool, error) {
	mayTrue, mayFalse := true, true

	if seg.Follow.Kind == sequence.Branch && seg.Follow.Loc.Match(line, col) {
		val, err := branchValue(seg.Follow.Constraint)
		if err != nil {
			return false, false, err
		}
		if val {
			mayFalse = false
		} else {
			mayTrue = false
		}
	}

	for _, wp := range seg.Avoid {
		if wp.Kind != sequence.Branch || !wp.Loc.Match(line, col) {
			continue
		}
		val, err := branchValue(wp.Constraint)
		if err != nil {
			return false, false, err
		}
		if val {
			mayTrue = false
		} else {
			mayFalse = false
		}
	}

	if !mayTrue && !mayFalse {
		m.sink.Warn(diagnostics.Conflict, "conflicting branching info in segment at %d:%d", line, col)
	}
	return mayTrue, mayFalse, nil
}

// ReturnConstraint invokes C3(a) on the active segment's follow
// constraint.
func (m *SequenceMatcher) ReturnConstraint(left constraint.Expr) (constraint.Predicate, error) {
	seg := m.witness.Active()
	if seg == nil {
		return constraint.Predicate{}, ErrNoActiveSegment
	}
	return constraint.ParseReturn(seg.Follow.Constraint, left)
}

// SwitchValue decimal-parses the active segment's follow constraint;
// per spec §4.7.2 it is fatal if the literal is not fully consumed, which
// strconv.ParseInt already enforces.
func (m *SequenceMatcher) SwitchValue() (int64, error) {
	seg := m.witness.Active()
	if seg == nil {
		return 0, ErrNoActiveSegment
	}
	n, err := strconv.ParseInt(seg.Follow.Constraint, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("matcher: switch constraint %q: %w", seg.Follow.Constraint, err)
	}
	return n, nil
}

// MatchTarget reports whether (line, col) falls within the active
// segment's target range. The sequence dialect never checks filename
// (spec §9 design note (a)).
func (m *SequenceMatcher) MatchTarget(line, col int) bool {
	seg := m.witness.Active()
	if seg == nil {
		return false
	}
	return seg.Follow.MatchTargetRange(line, col)
}

func branchValue(constraintStr string) (bool, error) {
	switch constraintStr {
	case "true":
		return true, nil
	case "false":
		return false, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrBadConstraintValue, constraintStr)
	}
}

// matchWaypoint implements spec §4.7.1's per-kind matching rules against a
// single instruction cursor.
func matchWaypoint(w sequence.Waypoint, c Cursor) bool {
	switch w.Kind {
	case sequence.Enter:
		if !w.Loc.Match(c.Line, c.Column) {
			return false
		}
		if c.Opcode != OpCall || c.PrevOpcode == OpReturn {
			return false
		}
		if w.Loc.Identifier != "" {
			return c.HasCalleeName && c.CalleeName == w.Loc.Identifier
		}
		return true
	case sequence.Return:
		if !w.Loc.Match(c.Line, c.Column) {
			return false
		}
		return c.Opcode == OpReturn || c.PrevOpcode == OpReturn
	case sequence.Branch:
		return w.Loc.Match(c.Line, c.Column) && c.Opcode == OpBranch
	case sequence.Assume, sequence.Target:
		return false
	default:
		return false
	}
}
