// Package property classifies a free-text witness specification string into
// the closed set of safety properties it asserts, and extracts the
// designated error-function name for reachability properties.
package property

// Property is one of the closed set of safety-property tags a witness can
// assert. It stays a small closed set rather than an open string.
type Property int

const (
	ValidFree Property = iota
	ValidDeref
	ValidMemtrack
	ValidMemcleanup
	Termination
	NoOverflow
	UnreachCall

	numProperties
)

func (p Property) String() string {
	switch p {
	case ValidFree:
		return "valid-free"
	case ValidDeref:
		return "valid-deref"
	case ValidMemtrack:
		return "valid-memtrack"
	case ValidMemcleanup:
		return "valid-memcleanup"
	case Termination:
		return "termination"
	case NoOverflow:
		return "no-overflow"
	case UnreachCall:
		return "unreach-call"
	default:
		return "unknown-property"
	}
}

// Set is a closed set of Property tags, several of which a single witness
// may assert simultaneously.
type Set uint8

func (s Set) Has(p Property) bool { return s&(1<<uint(p)) != 0 }

func (s Set) add(p Property) Set { return s | (1 << uint(p)) }

// Len reports how many properties are set.
func (s Set) Len() int {
	n := 0
	for p := Property(0); p < numProperties; p++ {
		if s.Has(p) {
			n++
		}
	}
	return n
}

// Empty reports whether the set asserts no property at all.
func (s Set) Empty() bool { return s == 0 }
