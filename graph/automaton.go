package graph

import (
	"fmt"

	"witnessguide/property"
)

// Automaton is the graph dialect's witness body: an id-keyed arena of nodes
// plus a flat edge list, exactly one entry node, and at least one violation
// node (enforced by Load). It is the exclusive owner of every Node and Edge
// it contains.
type Automaton struct {
	Nodes map[NodeID]*Node
	Edges []*Edge

	EntryID NodeID

	Properties    property.Set
	ErrorFunction string

	// RefutationEnabled is the loader's refute_witness configuration field
	// (spec §9): disabled whenever startoffset/endoffset attributes, or
	// non-\result text in a replay edge's assumption, was seen while
	// loading. Assumptions on normal edges are not checked.
	RefutationEnabled bool
}

// New creates an empty automaton.
func New() *Automaton {
	return &Automaton{Nodes: make(map[NodeID]*Node), RefutationEnabled: true}
}

// AddNode inserts a node, keyed by its ID. Callers must ensure IDs are
// unique; Load enforces this as a structural invariant.
func (a *Automaton) AddNode(n *Node) {
	a.Nodes[n.ID] = n
}

// AddEdge links a new edge into its source's outgoing set (Normal or
// Replay, decided by Edge.IsReplay), its target's incoming set, and the
// automaton's flat edge list. Both endpoints must already exist.
func (a *Automaton) AddEdge(e *Edge) error {
	src, ok := a.Nodes[e.Source]
	if !ok {
		return fmt.Errorf("graph: edge references missing source node %q", e.Source)
	}
	dst, ok := a.Nodes[e.Target]
	if !ok {
		return fmt.Errorf("graph: edge references missing target node %q", e.Target)
	}
	if e.IsReplay() {
		src.Replay = append(src.Replay, e)
	} else {
		src.Normal = append(src.Normal, e)
	}
	dst.In = append(dst.In, e)
	a.Edges = append(a.Edges, e)
	return nil
}

// Entry returns the unique entry node.
func (a *Automaton) Entry() (*Node, bool) {
	n, ok := a.Nodes[a.EntryID]
	return n, ok
}

// Violations returns every node with Violation set.
func (a *Automaton) Violations() []*Node {
	var out []*Node
	for _, n := range a.Nodes {
		if n.Violation {
			out = append(out, n)
		}
	}
	return out
}

// RemoveEdge detaches e from its source's outgoing sets, its target's
// incoming set, and the automaton's flat edge list. It does not remove
// either endpoint node.
func (a *Automaton) RemoveEdge(e *Edge) {
	if src, ok := a.Nodes[e.Source]; ok {
		src.Normal = removeEdge(src.Normal, e)
		src.Replay = removeEdge(src.Replay, e)
	}
	if dst, ok := a.Nodes[e.Target]; ok {
		dst.In = removeEdge(dst.In, e)
	}
	a.Edges = removeEdge(a.Edges, e)
}

// RemoveNode deletes a node from the id map. Callers must have already
// detached every edge touching it via RemoveEdge.
func (a *Automaton) RemoveNode(id NodeID) {
	delete(a.Nodes, id)
}

func removeEdge(edges []*Edge, target *Edge) []*Edge {
	out := edges[:0]
	for _, e := range edges {
		if e != target {
			out = append(out, e)
		}
	}
	return out
}
