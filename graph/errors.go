package graph

import "errors"

// errStructural is returned by Load whenever it has already reported a
// fatal diagnostic to the sink; the sink message carries the detail, so
// this sentinel just signals "loading cannot continue" to the caller.
var errStructural = errors.New("graph: witness failed to load, see diagnostics")
