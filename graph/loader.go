package graph

import (
	"strconv"
	"strings"

	"witnessguide/diagnostics"
	"witnessguide/doc"
	"witnessguide/property"
)

// Load parses a GraphML witness document into an Automaton, per spec §4.4.
// Fatal structural, mismatch, and lexical errors are reported to sink and
// returned as a non-nil error; advisory conditions (unknown metadata keys)
// are reported to sink as warnings without aborting the load. Offset
// attributes, and extra text around a replay edge's \result assumption,
// clear RefutationEnabled.
func Load(root doc.Node, sink diagnostics.Sink) (*Automaton, error) {
	graphml := root
	if graphml.Tag() != "graphml" {
		if children := root.Children("graphml"); len(children) == 1 {
			graphml = children[0]
		}
	}
	graphs := graphml.Children("graph")
	if len(graphs) != 1 {
		sink.Fatal(diagnostics.Structural, "graphml document must contain exactly one <graph> element, found %d", len(graphs))
		return nil, errStructural
	}
	g := graphs[0]

	a := New()

	if err := loadGraphMetadata(g, a, sink); err != nil {
		return nil, err
	}

	for _, n := range g.Children("node") {
		if err := loadNode(n, a, sink); err != nil {
			return nil, err
		}
	}
	for _, e := range g.Children("edge") {
		if err := loadEdge(e, a, sink); err != nil {
			return nil, err
		}
	}

	return a, checkStructuralInvariants(a, sink)
}

func loadGraphMetadata(g doc.Node, a *Automaton, sink diagnostics.Sink) error {
	var witnessType, sourceLang, specification string

	for _, d := range g.Children("data") {
		key, _ := d.Attr("key")
		val := d.Text()
		switch key {
		case "witness-type":
			witnessType = val
		case "sourcecodelang":
			sourceLang = val
		case "specification":
			specification = val
		case "producer", "programfile", "programhash", "architecture", "creationtime":
			// Recognized but unused by the guidance core.
		default:
			sink.Warn(diagnostics.Advisory, "unknown graph-level metadata key %q", key)
		}
	}

	if witnessType != "violation_witness" {
		sink.Fatal(diagnostics.Mismatch, "unsupported witness-type %q, want violation_witness", witnessType)
		return errStructural
	}
	if sourceLang != "" && !strings.EqualFold(sourceLang, "C") {
		sink.Warn(diagnostics.Mismatch, "unsupported sourcecodelang %q, treating as parse error", sourceLang)
		sink.Fatal(diagnostics.Mismatch, "unsupported sourcecodelang %q", sourceLang)
		return errStructural
	}

	set, errFunc, err := property.Classify(specification)
	if err != nil {
		sink.Fatal(diagnostics.Structural, "specification %q: %v", specification, err)
		return errStructural
	}
	a.Properties = set
	a.ErrorFunction = errFunc
	return nil
}

func loadNode(n doc.Node, a *Automaton, sink diagnostics.Sink) error {
	id, ok := n.Attr("id")
	if !ok || id == "" {
		sink.Fatal(diagnostics.Structural, "node missing id attribute")
		return errStructural
	}
	nodeID := NodeID(id)
	if _, exists := a.Nodes[nodeID]; exists {
		sink.Fatal(diagnostics.Structural, "duplicate node id %q", id)
		return errStructural
	}

	node := &Node{ID: nodeID}
	for _, d := range n.Children("data") {
		key, _ := d.Attr("key")
		val := d.Text()
		var flag *bool
		switch key {
		case "entry":
			flag = &node.Entry
		case "sink":
			flag = &node.Sink
		case "violation":
			flag = &node.Violation
		default:
			sink.Warn(diagnostics.Advisory, "unknown node-level metadata key %q", key)
			continue
		}
		b, err := parseBool(val)
		if err != nil {
			sink.Fatal(diagnostics.Lexical, "node %q: %s attribute has invalid boolean literal %q", id, key, val)
			return errStructural
		}
		*flag = b
	}

	if node.Entry {
		if a.EntryID != "" {
			sink.Fatal(diagnostics.Structural, "duplicate entry node: %q and %q", a.EntryID, id)
			return errStructural
		}
		a.EntryID = nodeID
	}

	a.AddNode(node)
	return nil
}

func loadEdge(e doc.Node, a *Automaton, sink diagnostics.Sink) error {
	sourceID, _ := e.Attr("source")
	targetID, _ := e.Attr("target")
	if sourceID == "" || targetID == "" {
		sink.Fatal(diagnostics.Structural, "edge missing source or target attribute")
		return errStructural
	}

	edge := &Edge{Source: NodeID(sourceID), Target: NodeID(targetID)}

	for _, d := range e.Children("data") {
		key, _ := d.Attr("key")
		val := d.Text()
		switch key {
		case "assumption":
			edge.Assumption = val
		case "assumption.scope":
			edge.AssumptionScope = val
		case "assumption.resultfunction":
			edge.AssumptionResultFunction = val
		case "control":
			switch val {
			case "condition-true":
				edge.Control = ControlTrue
			case "condition-false":
				edge.Control = ControlFalse
			default:
				sink.Fatal(diagnostics.Lexical, "edge %s->%s: invalid control value %q", sourceID, targetID, val)
				return errStructural
			}
		case "startline":
			edge.StartLine = parseIntOrZero(val)
		case "endline":
			edge.EndLine = parseIntOrZero(val)
		case "startoffset":
			edge.StartOffset = parseIntOrZero(val)
			edge.HasOffset = true
		case "endoffset":
			edge.EndOffset = parseIntOrZero(val)
			edge.HasOffset = true
		case "enterLoopHead":
			b, err := parseBool(val)
			if err != nil {
				sink.Fatal(diagnostics.Lexical, "edge %s->%s: enterLoopHead has invalid boolean literal %q", sourceID, targetID, val)
				return errStructural
			}
			edge.EnterLoop = b
		case "enterFunction":
			edge.EnterFunction = val
		case "returnFromFunction", "returnFrom":
			edge.ReturnFromFunction = val
		default:
			sink.Warn(diagnostics.Advisory, "unknown edge-level metadata key %q", key)
		}
	}

	if edge.HasOffset {
		a.RefutationEnabled = false
	}
	if edge.IsReplay() {
		if residue := nonResultResidue(edge.Assumption); residue {
			a.RefutationEnabled = false
		}
	}

	if err := a.AddEdge(edge); err != nil {
		sink.Fatal(diagnostics.Structural, "%v", err)
		return errStructural
	}
	return nil
}

// nonResultResidue reports whether a replay edge's assumption text carries
// anything beyond the "\result OP literal;" shape the return-constraint
// skimmer expects — such text disables refutation mode per spec §4.4.
func nonResultResidue(assumption string) bool {
	idx := strings.Index(assumption, "\\result")
	if idx < 0 {
		return assumption != ""
	}
	before := strings.TrimSpace(strings.Trim(assumption[:idx], " ;"))
	if before != "" {
		return true
	}
	rest := assumption[idx:]
	semi := strings.Index(rest, ";")
	if semi < 0 {
		return false
	}
	return strings.Trim(rest[semi:], " \t\r\n;") != ""
}

func checkStructuralInvariants(a *Automaton, sink diagnostics.Sink) error {
	if a.EntryID == "" {
		sink.Fatal(diagnostics.Structural, "witness has no entry node")
		return errStructural
	}
	if len(a.Violations()) == 0 {
		sink.Fatal(diagnostics.Structural, "witness has no violation node")
		return errStructural
	}
	return nil
}

func parseBool(s string) (bool, error) {
	switch s {
	case "", "false", "False", "FALSE":
		return false, nil
	case "true", "True", "TRUE":
		return true, nil
	default:
		return false, strconv.ErrSyntax
	}
}

func parseIntOrZero(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
