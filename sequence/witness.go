package sequence

import "witnessguide/property"

// Witness is the loaded sequence-dialect witness: a chain of segments with
// a single active cursor. active advances exactly once per follow-waypoint
// match; nothing else mutates it, so the executor's single-threaded
// ownership (spec §5) needs no locking here either.
type Witness struct {
	head   *Sequence[Segment]
	active *Sequence[Segment]

	Properties    property.Set
	ErrorFunction string
}

// Active returns the currently active segment, or nil once every segment
// has been consumed.
func (w *Witness) Active() *Segment {
	if w.active == nil {
		return nil
	}
	return w.active.Payload
}

// AtFinalSegment reports whether the active segment is the last in the
// chain.
func (w *Witness) AtFinalSegment() bool {
	return w.active != nil && w.active.Next == nil
}

// Advance moves to the next segment after the active one's follow
// waypoint has been matched. It reports whether a next segment exists.
func (w *Witness) Advance() bool {
	if w.active == nil || w.active.Next == nil {
		w.active = nil
		return false
	}
	w.active = w.active.Next
	return true
}

// Done reports whether every segment has been consumed.
func (w *Witness) Done() bool {
	return w.active == nil
}
