package matcher

import (
	"fmt"

	"witnessguide/constraint"
	"witnessguide/graph"
	"witnessguide/replay"
)

// GraphMatcher tracks a current node in a normalized graph.Automaton and
// advances it as matching edges are observed. Per spec §4.7.3, it never
// constrains branch direction — the graph witness monitors execution
// rather than driving it — so Step always reports both directions
// allowed; only TargetReached carries information.
type GraphMatcher struct {
	automaton *graph.Automaton
	tape      *replay.Tape
	current   graph.NodeID
}

// NewGraphMatcher starts tracking at the automaton's entry node.
func NewGraphMatcher(a *graph.Automaton, tape *replay.Tape) *GraphMatcher {
	return &GraphMatcher{automaton: a, tape: tape, current: a.EntryID}
}

func (m *GraphMatcher) Step(c Cursor) (StepResult, error) {
	node, ok := m.automaton.Nodes[m.current]
	if !ok {
		return StepResult{}, fmt.Errorf("matcher: current node %q no longer exists in the automaton", m.current)
	}

	for _, e := range node.Normal {
		if edgeMatchesCursor(e, c) {
			m.current = e.Target
			break
		}
	}

	cur, ok := m.automaton.Nodes[m.current]
	return StepResult{
		AllowTrue:     true,
		AllowFalse:    true,
		TargetReached: ok && cur.Violation,
	}, nil
}

// ReplayValue draws the next concrete value off the automaton's replay
// tape for a __VERIFIER_nondet_* call at source line, per spec §4.8.
func (m *GraphMatcher) ReplayValue(function string, line int) (constraint.Value, error) {
	return m.tape.Next(function, line)
}

// edgeMatchesCursor decides whether e is the edge the executor's current
// instruction has followed. EnterFunction edges are matched by call opcode
// and callee name, ReturnFromFunction edges by return opcode alone (the
// function name is not compared); plain edges by their source-line
// span. An edge carrying none of these predicates is a free transition
// that always matches, the way an epsilon edge would.
func edgeMatchesCursor(e *graph.Edge, c Cursor) bool {
	switch {
	case e.EnterFunction != "":
		return c.Opcode == OpCall && c.HasCalleeName && c.CalleeName == e.EnterFunction
	case e.ReturnFromFunction != "":
		return c.Opcode == OpReturn
	case e.StartLine != 0:
		return c.Line >= e.StartLine && (e.EndLine == 0 || c.Line <= e.EndLine)
	default:
		return true
	}
}
