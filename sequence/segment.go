package sequence

// Segment is an ordered set of waypoints the executor must avoid, followed
// by exactly one waypoint it must hit (Follow) to advance to the next
// segment. The matcher package drives the actual queries against a Cursor;
// Segment only holds the parsed shape.
type Segment struct {
	Avoid  []Waypoint
	Follow Waypoint
}
