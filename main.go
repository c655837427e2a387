// lovegraph - who loves whom
// Builds a relations graph from simple statements and answers questions about it
package main

import (
	"fmt"
	"os"

	"github.com/CanopyHQ/lovegraph/cmd"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cmd.SetVersion(version, commit, date)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
