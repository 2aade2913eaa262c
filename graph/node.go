// Package graph implements the GraphML-based witness dialect (C4): a
// directed, possibly cyclic automaton of nodes and edges, with exactly one
// entry node and at least one violation node.
package graph

// NodeID identifies a Node within an Automaton. Edges reference nodes by
// NodeID rather than by pointer (spec §9: "store NodeId on edges rather
// than pointers"), so the automaton can delete a node during normalization
// without leaving a dangling reference anywhere.
type NodeID string

// Node is a single automaton state. Nodes own their outgoing edges; edges
// hold non-owning references (by NodeID) to their source and target.
type Node struct {
	ID NodeID

	Entry     bool
	Sink      bool
	Violation bool

	// Normal is the ordered set of outgoing edges whose
	// assumption.resultfunction does not name a __VERIFIER_nondet_*
	// symbol.
	Normal []*Edge
	// Replay is the ordered set of outgoing edges whose
	// assumption.resultfunction names a __VERIFIER_nondet_* symbol.
	Replay []*Edge
	// In is every edge (normal or replay) that targets this node,
	// maintained so the normalizer's reverse-reachability walk does not
	// need to scan the whole edge set.
	In []*Edge
}

// Edges returns every outgoing edge, normal then replay, in that order.
func (n *Node) Edges() []*Edge {
	out := make([]*Edge, 0, len(n.Normal)+len(n.Replay))
	out = append(out, n.Normal...)
	out = append(out, n.Replay...)
	return out
}
