package normalize

import (
	"testing"

	"witnessguide/diagnostics"
	"witnessguide/doc"
	"witnessguide/graph"
)

func loadGraph(t *testing.T, graphml string) *graph.Automaton {
	t.Helper()
	root, err := doc.ParseXML([]byte(graphml))
	if err != nil {
		t.Fatalf("ParseXML: %v", err)
	}
	sink := &diagnostics.RecordingSink{}
	a, err := graph.Load(root, sink)
	if err != nil {
		t.Fatalf("graph.Load: %v (fatals: %v)", err, sink.Fatals)
	}
	return a
}

const deterministicGraphML = `<?xml version="1.0"?>
<graphml>
  <graph edgedefault="directed">
    <data key="witness-type">violation_witness</data>
    <data key="sourcecodelang">C</data>
    <data key="specification">CHECK( init(main()), LTL(G ! call(reach_error())) )</data>
    <node id="entry"><data key="entry">true</data></node>
    <node id="n1"></node>
    <node id="violation"><data key="violation">true</data></node>
    <edge source="entry" target="n1"></edge>
    <edge source="n1" target="violation">
      <data key="assumption">\result == 42;</data>
      <data key="assumption.resultfunction">__VERIFIER_nondet_int</data>
      <data key="startline">17</data>
    </edge>
  </graph>
</graphml>`

func TestNormalizeScenario1Deterministic(t *testing.T) {
	a := loadGraph(t, deterministicGraphML)

	tape, deterministic := Normalize(a)
	if !deterministic {
		t.Fatal("deterministic = false, want true for a single linear path")
	}
	if tape.Len() != 1 {
		t.Fatalf("tape.Len() = %d, want 1", tape.Len())
	}

	v, err := tape.Next("__VERIFIER_nondet_int", 17)
	if err != nil {
		t.Fatalf("tape.Next: %v", err)
	}
	if v.Int64() != 42 {
		t.Errorf("replay value = %d, want 42", v.Int64())
	}
}

const sinkPruningGraphML = `<?xml version="1.0"?>
<graphml>
  <graph edgedefault="directed">
    <data key="witness-type">violation_witness</data>
    <data key="sourcecodelang">C</data>
    <data key="specification">CHECK( init(main()), LTL(G ! call(reach_error())) )</data>
    <node id="entry"><data key="entry">true</data></node>
    <node id="n1"></node>
    <node id="n2"></node>
    <node id="violation"><data key="violation">true</data></node>
    <edge source="entry" target="n1"></edge>
    <edge source="n1" target="violation"></edge>
    <edge source="entry" target="n2"></edge>
  </graph>
</graphml>`

func TestNormalizeScenario2SinkPruning(t *testing.T) {
	a := loadGraph(t, sinkPruningGraphML)

	_, deterministic := Normalize(a)
	if !deterministic {
		t.Fatal("deterministic = false, want true: n2 is a dead end, not a second violation path")
	}

	if _, ok := a.Nodes["n2"]; ok {
		t.Error("n2 is still present after normalization, want it pruned")
	}
	entry, _ := a.Entry()
	if len(entry.Normal) != 1 {
		t.Errorf("entry has %d normal edges after normalization, want 1", len(entry.Normal))
	}
	if entry.Normal[0].Target != "n1" {
		t.Errorf("entry's remaining edge targets %q, want n1", entry.Normal[0].Target)
	}
}

const multiViolationGraphML = `<?xml version="1.0"?>
<graphml>
  <graph edgedefault="directed">
    <data key="witness-type">violation_witness</data>
    <data key="sourcecodelang">C</data>
    <data key="specification">CHECK( init(main()), LTL(G ! call(reach_error())) )</data>
    <node id="entry"><data key="entry">true</data></node>
    <node id="v1"><data key="violation">true</data></node>
    <node id="v2"><data key="violation">true</data></node>
    <edge source="entry" target="v1"></edge>
    <edge source="entry" target="v2"></edge>
  </graph>
</graphml>`

func TestNormalizeScenario6MultipleViolationsDowngradesDeterminism(t *testing.T) {
	a := loadGraph(t, multiViolationGraphML)

	tape, deterministic := Normalize(a)
	if deterministic {
		t.Fatal("deterministic = true, want false with two distinct violation nodes")
	}
	if tape.Len() != 0 {
		t.Errorf("tape.Len() = %d, want 0 (discarded tape)", tape.Len())
	}

	if _, ok := a.Nodes["v1"]; !ok {
		t.Error("v1 pruned, want it kept: it is itself reverse-reachable from itself")
	}
	if _, ok := a.Nodes["v2"]; !ok {
		t.Error("v2 pruned, want it kept")
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	a := loadGraph(t, sinkPruningGraphML)

	Normalize(a)
	nodesAfterFirst := len(a.Nodes)
	edgesAfterFirst := len(a.Edges)

	_, deterministic := Normalize(a)
	if !deterministic {
		t.Error("second Normalize() pass changed the determinism verdict")
	}
	if len(a.Nodes) != nodesAfterFirst || len(a.Edges) != edgesAfterFirst {
		t.Errorf("second Normalize() pass changed node/edge counts: %d/%d -> %d/%d",
			nodesAfterFirst, edgesAfterFirst, len(a.Nodes), len(a.Edges))
	}
}

func TestNormalizeUnknownNondetFunctionDowngradesWithoutAborting(t *testing.T) {
	const graphml = `<?xml version="1.0"?>
<graphml>
  <graph edgedefault="directed">
    <data key="witness-type">violation_witness</data>
    <data key="sourcecodelang">C</data>
    <data key="specification">CHECK( init(main()), LTL(G ! call(reach_error())) )</data>
    <node id="entry"><data key="entry">true</data></node>
    <node id="violation"><data key="violation">true</data></node>
    <edge source="entry" target="violation">
      <data key="assumption">\result == 1;</data>
      <data key="assumption.resultfunction">__VERIFIER_nondet_widget</data>
    </edge>
  </graph>
</graphml>`
	a := loadGraph(t, graphml)

	tape, deterministic := Normalize(a)
	if deterministic {
		t.Error("deterministic = true, want false for an unrecognized nondet function symbol")
	}
	if tape.Len() != 0 {
		t.Error("tape should be discarded when determinism is downgraded")
	}
}
