package matcher

// StepResult is the composite answer to a single instruction step, per
// spec §6's executor-facing "advance" hook: which branch directions are
// currently allowed, and whether the witness considers the error location
// reached.
type StepResult struct {
	AllowTrue     bool
	AllowFalse    bool
	TargetReached bool
}

// Matcher is the query surface both dialects share: advance whatever
// internal position the witness tracks (current automaton node, or active
// segment) given the instruction the executor is now at, and report the
// guidance for this step. Dialect-specific queries (return constraints,
// switch values, replay values, avoid checks) live only on the concrete
// GraphMatcher/SequenceMatcher types, since they have no graph-dialect
// equivalent (or vice versa) per spec §9's design note on dual dialects.
type Matcher interface {
	Step(c Cursor) (StepResult, error)
}
