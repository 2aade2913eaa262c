// Package normalize implements the automaton normalizer (C6): pruning the
// graph witness to nodes that can reach a violation, and deciding whether a
// single deterministic replay trace exists.
package normalize

import (
	"witnessguide/constraint"
	"witnessguide/graph"
	"witnessguide/replay"
)

// Normalize walks a forward from its entry node and cuts every branch that
// cannot reach a violation, per spec §4.6, mutating a in place; nodes the
// walk never meets from the entry are left as they are. It returns the
// replay tape extracted along the way and whether the witness turned out
// to be deterministic; a non-deterministic witness gets a discarded
// (empty) tape, and the executor must fall back to symbolic inputs rather
// than consult it.
func Normalize(a *graph.Automaton) (*replay.Tape, bool) {
	reaching, multiplePaths := computeReaching(a)
	deterministic := len(a.Violations()) == 1 && !multiplePaths

	entry, ok := a.Entry()
	if !ok {
		return replay.New(nil), false
	}

	visited := map[graph.NodeID]bool{entry.ID: true}
	queue := []graph.NodeID{entry.ID}
	var tapeEntries []replay.Entry

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		node := a.Nodes[id]
		if node == nil {
			continue
		}

		for _, e := range node.Edges() {
			if !reaching[e.Target] {
				a.RemoveEdge(e)
				pruneSubtree(a, e.Target)
				continue
			}
			if visited[e.Target] {
				deterministic = false
				continue
			}
			visited[e.Target] = true
			queue = append(queue, e.Target)

			if e.IsReplay() && deterministic {
				if tapeEntry := recordReplayEntry(e); tapeEntry != nil {
					tapeEntries = append(tapeEntries, *tapeEntry)
				} else {
					deterministic = false
				}
			}
		}
	}

	if !deterministic {
		return replay.New(nil), false
	}
	return replay.New(tapeEntries), true
}

// recordReplayEntry extracts a single replay-tape entry from a replay
// edge's assumption text via C3(b), or returns nil if the literal is
// unparseable or the nondet function symbol is unrecognized — either of
// which downgrades determinism (spec §4.6 step 3, §7 kind 4).
func recordReplayEntry(e *graph.Edge) *replay.Entry {
	_, literal, err := constraint.ExtractResultLiteral(e.Assumption)
	if err != nil {
		return nil
	}
	val, unknown := constraint.ParseNondetLiteral(e.AssumptionResultFunction, literal)
	if unknown {
		return nil
	}
	return &replay.Entry{Function: e.AssumptionResultFunction, Line: e.StartLine, Ordinal: 0, Value: val}
}

// computeReaching walks backward from every violation node over edges_in,
// returning the set of nodes that can reach a violation. multiplePaths is
// true as soon as a node is rediscovered through a second forward edge
// toward the reaching set — spec §4.6 step 2's non-determinism signal.
func computeReaching(a *graph.Automaton) (map[graph.NodeID]bool, bool) {
	reaching := map[graph.NodeID]bool{}
	multiplePaths := false

	var queue []graph.NodeID
	for _, v := range a.Violations() {
		reaching[v.ID] = true
		queue = append(queue, v.ID)
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		node := a.Nodes[id]
		if node == nil {
			continue
		}
		for _, e := range node.In {
			pred := e.Source
			if reaching[pred] {
				multiplePaths = true
				continue
			}
			reaching[pred] = true
			queue = append(queue, pred)
		}
	}
	return reaching, multiplePaths
}

// pruneSubtree deletes start and every node reachable from it, iteratively
// and with an explicit visited set so cycles in the witness graph (spec
// §4.6's cycle-safety requirement) cannot cause non-termination.
func pruneSubtree(a *graph.Automaton, start graph.NodeID) {
	visited := map[graph.NodeID]bool{}
	stack := []graph.NodeID{start}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true

		node, ok := a.Nodes[id]
		if !ok {
			continue
		}
		for _, e := range node.Edges() {
			a.RemoveEdge(e)
			if !visited[e.Target] {
				stack = append(stack, e.Target)
			}
		}
		a.RemoveNode(id)
	}
}
