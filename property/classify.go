package property

import (
	"errors"
	"strings"
)

// ErrEmptyErrorFunction is returned when the specification contains the
// unreach-call marker "G ! call(" but names no error function inside the
// parentheses.
var ErrEmptyErrorFunction = errors.New("property: specification names no error function")

// ErrNoProperty is returned when a specification string does not match any
// known property. Callers loading the graph dialect treat this as fatal
// per spec §4.2; callers loading the sequence dialect may choose to treat
// it differently since a specification is not always present there.
var ErrNoProperty = errors.New("property: specification matches no known property")

// Classify maps a free-text specification string, as found in a witness's
// "specification" metadata, to the set of properties it asserts and the
// designated error function, if any.
//
// Matching is substring search against a fixed vocabulary, not a grammar:
// the specification strings in the wild (SV-COMP's property DSL) are
// produced by a handful of templates, and the witness formats this core
// consumes were never meant to carry a full reparse of that DSL.
func Classify(spec string) (Set, string, error) {
	var set Set

	if strings.Contains(spec, "valid-free") {
		set = set.add(ValidFree)
	}
	if strings.Contains(spec, "valid-deref") {
		set = set.add(ValidDeref)
	}
	if strings.Contains(spec, "valid-memtrack") {
		set = set.add(ValidMemtrack)
	}
	if strings.Contains(spec, "valid-memcleanup") {
		set = set.add(ValidMemcleanup)
	}
	if strings.Contains(spec, "! overflow") {
		set = set.add(NoOverflow)
	}

	var errFunc string
	if idx := strings.Index(spec, "G ! call("); idx >= 0 {
		name, err := extractErrorFunction(spec[idx+len("G ! call("):])
		if err != nil {
			return 0, "", err
		}
		set = set.add(UnreachCall)
		errFunc = name
	} else if strings.Contains(spec, "reach_error") {
		// Legacy SV-COMP specifications name the error function
		// textually rather than through the "G ! call(...)" template.
		set = set.add(UnreachCall)
		errFunc = "reach_error"
	}

	if set.Empty() {
		return 0, "", ErrNoProperty
	}
	return set, errFunc, nil
}

// extractErrorFunction scans the remainder of a specification string
// following "G ! call(" for the called identifier: leading spaces and "("
// are skipped, and the identifier ends at the first "(", " ", or ")".
func extractErrorFunction(rest string) (string, error) {
	i := 0
	for i < len(rest) && (rest[i] == ' ' || rest[i] == '(') {
		i++
	}
	start := i
	for i < len(rest) && rest[i] != '(' && rest[i] != ' ' && rest[i] != ')' {
		i++
	}
	if i == start {
		return "", ErrEmptyErrorFunction
	}
	return rest[start:i], nil
}
