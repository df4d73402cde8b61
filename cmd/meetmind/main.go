// Meetmind records meeting decisions and answers questions about them
// through a chain of AI providers, falling back to deterministic text
// analysis when no provider is reachable.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
