// Package sequence implements the YAML-based waypoint-sequence witness
// dialect (C5): an ordered chain of segments, each an avoid/follow waypoint
// list. Sequence[T] is the generic doubly-linked chain Witness uses to
// track the active segment.
package sequence

// Sequence is a node in a generic doubly-linked chain.
type Sequence[T any] struct {
	Payload  *T
	Next     *Sequence[T]
	Previous *Sequence[T]
}

func New[T any](payload *T) *Sequence[T] {
	return &Sequence[T]{
		Payload:  payload,
		Next:     nil,
		Previous: nil,
	}
}

func (s *Sequence[T]) InsertAfter(payload *T) *Sequence[T] {
	element := &Sequence[T]{
		Payload:  payload,
		Previous: s,
		Next:     nil,
	}
	s.Next = element
	return element
}
