// Command foldertree drives the in-memory folder namespace from the
// command line: replaying scripted operations, rendering the current
// tree, and stress-testing the concurrency protocol with concurrent
// workers.
package main

import (
	"fmt"
	"os"

	"github.com/foldertree/foldertree/cmd/foldertree/cmd"
)

func main() {
	os.Exit(run())
}

// run recovers a panic from anywhere in the call tree (a monitor
// invariant violation, say) so the binary prints a diagnostic and
// exits non-zero instead of crashing silently mid-demo, then runs the
// CLI normally.
func run() int {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "foldertree: fatal: %v\n", r)
			os.Exit(2)
		}
	}()

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
