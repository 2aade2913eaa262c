package sequence

import (
	"testing"

	"witnessguide/diagnostics"
	"witnessguide/doc"
	"witnessguide/property"
)

const scenarioYAML = `
- entry_type: violation_sequence
  metadata:
    task:
      specification: "CHECK( init(main()), LTL(G ! call(reach_error())) )"
  content:
    - segment:
        - waypoint:
            type: branching
            location:
              file_name: test.c
              line: 10
              column: 5
            constraint:
              value: "true"
    - segment:
        - waypoint:
            type: branching
            location:
              file_name: test.c
              line: 20
              column: 1
            constraint:
              value: "false"
        - waypoint:
            type: target
            location:
              file_name: test.c
              line: 30
              column: 0
            location2:
              file_name: test.c
              line: 30
              column: 0
`

func mustParseYAML(t *testing.T, text string) doc.Node {
	t.Helper()
	n, err := doc.ParseYAML([]byte(text))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	return n
}

func TestLoadSequence(t *testing.T) {
	root := mustParseYAML(t, scenarioYAML)
	sink := &diagnostics.RecordingSink{}

	w, err := Load(root, sink)
	if err != nil {
		t.Fatalf("Load: %v (fatals: %v)", err, sink.Fatals)
	}
	if len(sink.Fatals) != 0 {
		t.Fatalf("unexpected fatals: %v", sink.Fatals)
	}

	if !w.Properties.Has(property.UnreachCall) {
		t.Errorf("Properties = %v, want UnreachCall set", w.Properties)
	}
	if w.ErrorFunction != "reach_error" {
		t.Errorf("ErrorFunction = %q, want reach_error", w.ErrorFunction)
	}

	seg1 := w.Active()
	if seg1 == nil {
		t.Fatal("Active() returned nil for first segment")
	}
	if seg1.Follow.Kind != Branch {
		t.Errorf("segment 1 follow kind = %v, want Branch", seg1.Follow.Kind)
	}
	if seg1.Follow.Loc.Line != 10 || seg1.Follow.Loc.Column != 5 {
		t.Errorf("segment 1 follow loc = %+v", seg1.Follow.Loc)
	}
	if seg1.Follow.Constraint != "true" {
		t.Errorf("segment 1 follow constraint = %q, want true", seg1.Follow.Constraint)
	}
	if len(seg1.Avoid) != 0 {
		t.Errorf("segment 1 avoid = %v, want none", seg1.Avoid)
	}
	if w.AtFinalSegment() {
		t.Error("AtFinalSegment() = true on first of two segments")
	}

	if !w.Advance() {
		t.Fatal("Advance() returned false, want true (second segment exists)")
	}

	seg2 := w.Active()
	if len(seg2.Avoid) != 1 {
		t.Fatalf("segment 2 avoid = %v, want 1 entry", seg2.Avoid)
	}
	if seg2.Avoid[0].Kind != Branch || seg2.Avoid[0].Loc.Line != 20 {
		t.Errorf("segment 2 avoid[0] = %+v", seg2.Avoid[0])
	}
	if seg2.Follow.Kind != Target {
		t.Fatalf("segment 2 follow kind = %v, want Target", seg2.Follow.Kind)
	}
	if !seg2.Follow.HasLoc2 {
		t.Fatal("segment 2 follow target has no Loc2")
	}
	if !w.AtFinalSegment() {
		t.Error("AtFinalSegment() = false on last segment")
	}

	if w.Advance() {
		t.Error("Advance() returned true past the final segment")
	}
	if !w.Done() {
		t.Error("Done() = false after advancing past the final segment")
	}
}

func TestLoadSequenceWrongEntryType(t *testing.T) {
	const yamlText = `
- entry_type: correctness_witness
  content:
    - segment:
        - waypoint:
            type: branching
            location:
              file_name: test.c
              line: 1
              column: 1
            constraint:
              value: "true"
`
	root := mustParseYAML(t, yamlText)
	sink := &diagnostics.RecordingSink{}

	if _, err := Load(root, sink); err == nil {
		t.Fatal("Load succeeded, want fatal error for wrong entry_type")
	}
	if !sink.HasFatal(diagnostics.Mismatch) {
		t.Errorf("sink.Fatals = %v, want a Mismatch entry", sink.Fatals)
	}
}

func TestLoadSequenceTargetOutsideFinalFollowIsFatal(t *testing.T) {
	const yamlText = `
- entry_type: violation_sequence
  content:
    - segment:
        - waypoint:
            type: target
            location:
              file_name: test.c
              line: 1
            location2:
              file_name: test.c
              line: 1
        - waypoint:
            type: branching
            location:
              file_name: test.c
              line: 2
              column: 1
            constraint:
              value: "true"
`
	root := mustParseYAML(t, yamlText)
	sink := &diagnostics.RecordingSink{}

	if _, err := Load(root, sink); err == nil {
		t.Fatal("Load succeeded, want fatal error for non-final target waypoint")
	}
}

func TestLoadSequenceUnknownWaypointTypeIsFatal(t *testing.T) {
	const yamlText = `
- entry_type: violation_sequence
  content:
    - segment:
        - waypoint:
            type: something_else
            location:
              file_name: test.c
              line: 1
              column: 1
`
	root := mustParseYAML(t, yamlText)
	sink := &diagnostics.RecordingSink{}

	if _, err := Load(root, sink); err == nil {
		t.Fatal("Load succeeded, want fatal error for unknown waypoint type")
	}
	if !sink.HasFatal(diagnostics.Lexical) {
		t.Errorf("sink.Fatals = %v, want a Lexical entry", sink.Fatals)
	}
}

func TestLoadSequenceTargetMissingLineIsAdvisoryOnly(t *testing.T) {
	const yamlText = `
- entry_type: violation_sequence
  content:
    - segment:
        - waypoint:
            type: target
            location:
              file_name: test.c
            location2:
              file_name: test.c
`
	root := mustParseYAML(t, yamlText)
	sink := &diagnostics.RecordingSink{}

	_, err := Load(root, sink)
	if err != nil {
		t.Fatalf("Load: %v, want success with only an advisory warning", err)
	}
	if len(sink.Warns) == 0 {
		t.Error("sink.Warns is empty, want a warning for missing target line")
	}
}
