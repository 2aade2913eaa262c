package sequence

import "errors"

// errFailed is returned by Load whenever it has already reported a fatal
// diagnostic to the sink.
var errFailed = errors.New("sequence: witness failed to load, see diagnostics")
