// Command witnessguide is a small inspection front end over the witness
// core: it loads a GraphML or waypoint-sequence witness file and prints the
// properties, error function, and normalization summary a symbolic
// execution engine would consult, per spec §10.2's ambient CLI expansion.
package main

import (
	"os"

	"witnessguide/cmd/witnessguide/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
