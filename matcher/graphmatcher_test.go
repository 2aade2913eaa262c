package matcher

import (
	"testing"

	"witnessguide/constraint"
	"witnessguide/graph"
	"witnessguide/replay"
)

func buildLinearAutomaton() *graph.Automaton {
	a := graph.New()
	a.AddNode(&graph.Node{ID: "n0", Entry: true})
	a.AddNode(&graph.Node{ID: "n1"})
	a.AddNode(&graph.Node{ID: "n2", Violation: true})
	a.EntryID = "n0"
	a.AddEdge(&graph.Edge{Source: "n0", Target: "n1", StartLine: 10, EndLine: 10})
	a.AddEdge(&graph.Edge{Source: "n1", Target: "n2", StartLine: 20, EndLine: 20})
	return a
}

func TestGraphMatcherAdvancesAndReachesViolation(t *testing.T) {
	a := buildLinearAutomaton()
	m := NewGraphMatcher(a, replay.New(nil))

	res, err := m.Step(Cursor{Line: 10, Opcode: OpOther})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if res.TargetReached {
		t.Error("TargetReached = true before reaching the violation node")
	}
	if !res.AllowTrue || !res.AllowFalse {
		t.Error("graph matcher must never constrain branch direction")
	}

	res, err = m.Step(Cursor{Line: 20, Opcode: OpOther})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.TargetReached {
		t.Error("TargetReached = false at the violation node")
	}
}

func TestGraphMatcherReplayValue(t *testing.T) {
	a := graph.New()
	a.AddNode(&graph.Node{ID: "n0", Entry: true})
	a.EntryID = "n0"
	tape := replay.New([]replay.Entry{
		{Function: "__VERIFIER_nondet_int", Line: 5, Value: constraint.NewSigned(32, 7)},
	})
	m := NewGraphMatcher(a, tape)

	v, err := m.ReplayValue("__VERIFIER_nondet_int", 5)
	if err != nil {
		t.Fatalf("ReplayValue: %v", err)
	}
	if v.Int64() != 7 {
		t.Errorf("ReplayValue() = %d, want 7", v.Int64())
	}

	if _, err := m.ReplayValue("__VERIFIER_nondet_int", 5); err == nil {
		t.Error("ReplayValue() succeeded past exhaustion, want error")
	}
}

func TestGraphMatcherCallEdgeMatchesByCalleeName(t *testing.T) {
	a := graph.New()
	a.AddNode(&graph.Node{ID: "n0", Entry: true})
	a.AddNode(&graph.Node{ID: "n1", Violation: true})
	a.EntryID = "n0"
	a.AddEdge(&graph.Edge{Source: "n0", Target: "n1", EnterFunction: "foo"})

	m := NewGraphMatcher(a, replay.New(nil))

	res, err := m.Step(Cursor{Opcode: OpCall, CalleeName: "bar", HasCalleeName: true})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if res.TargetReached {
		t.Error("TargetReached = true on a call to the wrong callee")
	}

	res, err = m.Step(Cursor{Opcode: OpCall, CalleeName: "foo", HasCalleeName: true})
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.TargetReached {
		t.Error("TargetReached = false after a call edge matched by callee name")
	}
}
