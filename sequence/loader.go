package sequence

import (
	"strconv"

	"witnessguide/diagnostics"
	"witnessguide/doc"
	"witnessguide/property"
)

// Load parses a waypoint-sequence witness document into a Witness, per
// spec §4.5. Fatal diagnostics (structural, mismatch, lexical) abort the
// load and are reported through sink; advisory diagnostics (a target
// waypoint missing its line) are warnings only.
func Load(root doc.Node, sink diagnostics.Sink) (*Witness, error) {
	entries := root.Children("")
	if len(entries) != 1 {
		sink.Fatal(diagnostics.Structural, "witness document must contain exactly one top-level entry, found %d", len(entries))
		return nil, errFailed
	}
	entry := entries[0]

	entryType, _ := entry.Attr("entry_type")
	if entryType != "violation_sequence" {
		sink.Fatal(diagnostics.Mismatch, "unsupported entry_type %q, want violation_sequence", entryType)
		return nil, errFailed
	}

	contents := entry.Children("content")
	if len(contents) != 1 {
		sink.Fatal(diagnostics.Structural, "entry must carry exactly one content list, found %d", len(contents))
		return nil, errFailed
	}
	segmentNodes := contents[0].Children("segment")
	if len(segmentNodes) == 0 {
		sink.Fatal(diagnostics.Structural, "content carries no segments")
		return nil, errFailed
	}

	segments := make([]*Segment, 0, len(segmentNodes))
	for i, segNode := range segmentNodes {
		seg, err := loadSegment(segNode, i == len(segmentNodes)-1, sink)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}

	head := New(segments[0])
	cur := head
	for _, seg := range segments[1:] {
		cur = cur.InsertAfter(seg)
	}

	w := &Witness{head: head, active: head}
	loadSpecification(entry, w, sink)
	return w, nil
}

// loadSpecification resolves metadata.task.specification, per spec §6. A
// missing specification is tolerated here (unlike the graph dialect): not
// every sequence witness in the wild carries one.
func loadSpecification(entry doc.Node, w *Witness, sink diagnostics.Sink) {
	metadataNodes := entry.Children("metadata")
	if len(metadataNodes) != 1 {
		return
	}
	taskNodes := metadataNodes[0].Children("task")
	if len(taskNodes) != 1 {
		return
	}
	spec, ok := taskNodes[0].Attr("specification")
	if !ok || spec == "" {
		return
	}
	set, errFunc, err := property.Classify(spec)
	if err != nil {
		sink.Warn(diagnostics.Advisory, "specification %q: %v", spec, err)
		return
	}
	w.Properties = set
	w.ErrorFunction = errFunc
}

func loadSegment(segNode doc.Node, isFinalSegment bool, sink diagnostics.Sink) (*Segment, error) {
	waypointNodes := segNode.Children("waypoint")
	if len(waypointNodes) == 0 {
		sink.Fatal(diagnostics.Structural, "segment carries no waypoints")
		return nil, errFailed
	}

	seg := &Segment{}
	for j, wpNode := range waypointNodes {
		isFollow := j == len(waypointNodes)-1
		wp, err := loadWaypoint(wpNode, sink)
		if err != nil {
			return nil, err
		}
		if wp.Kind == Target && !(isFinalSegment && isFollow) {
			sink.Fatal(diagnostics.Lexical, "target waypoint may only appear as the follow waypoint of the final segment")
			return nil, errFailed
		}
		if isFollow {
			seg.Follow = wp
		} else {
			seg.Avoid = append(seg.Avoid, wp)
		}
	}
	return seg, nil
}

func loadWaypoint(wpNode doc.Node, sink diagnostics.Sink) (Waypoint, error) {
	typeStr, _ := wpNode.Attr("type")
	kind, ok := mapKind(typeStr)
	if !ok {
		sink.Fatal(diagnostics.Lexical, "unknown waypoint type %q", typeStr)
		return Waypoint{}, errFailed
	}
	targetKind := kind == Target

	locNodes := wpNode.Children("location")
	if len(locNodes) != 1 {
		sink.Fatal(diagnostics.Structural, "waypoint missing location")
		return Waypoint{}, errFailed
	}
	loc, err := loadLocation(locNodes[0], !targetKind, sink)
	if err != nil {
		return Waypoint{}, err
	}

	wp := Waypoint{Kind: kind, Loc: loc}

	if targetKind {
		loc2Nodes := wpNode.Children("location2")
		if len(loc2Nodes) != 1 {
			sink.Fatal(diagnostics.Structural, "target waypoint missing location2")
			return Waypoint{}, errFailed
		}
		loc2, err := loadLocation(loc2Nodes[0], false, sink)
		if err != nil {
			return Waypoint{}, err
		}
		wp.Loc2 = loc2
		wp.HasLoc2 = true
	}

	if constraintNodes := wpNode.Children("constraint"); len(constraintNodes) == 1 {
		if val, ok := constraintNodes[0].Attr("value"); ok {
			wp.Constraint = val
		}
	}

	return wp, nil
}

func loadLocation(locNode doc.Node, required bool, sink diagnostics.Sink) (Location, error) {
	file, _ := locNode.Attr("file_name")
	if required && file == "" {
		sink.Fatal(diagnostics.Structural, "location missing file_name")
		return Location{}, errFailed
	}

	var line int
	if lineStr, hasLine := locNode.Attr("line"); hasLine {
		n, err := strconv.Atoi(lineStr)
		if err != nil {
			sink.Fatal(diagnostics.Lexical, "location has invalid line number %q", lineStr)
			return Location{}, errFailed
		}
		line = n
	} else if required {
		sink.Fatal(diagnostics.Structural, "location missing line")
		return Location{}, errFailed
	} else {
		sink.Warn(diagnostics.Advisory, "target location missing line, result may be inaccurate")
	}

	var column int
	if colStr, hasCol := locNode.Attr("column"); hasCol {
		n, err := strconv.Atoi(colStr)
		if err != nil {
			sink.Fatal(diagnostics.Lexical, "location has invalid column %q", colStr)
			return Location{}, errFailed
		}
		column = n
	}

	identifier, _ := locNode.Attr("identifier")
	return Location{File: file, Line: line, Column: column, Identifier: identifier}, nil
}

func mapKind(s string) (Kind, bool) {
	switch s {
	case "assumption":
		return Assume, true
	case "branching":
		return Branch, true
	case "function_return":
		return Return, true
	case "function_enter":
		return Enter, true
	case "target":
		return Target, true
	default:
		return 0, false
	}
}
