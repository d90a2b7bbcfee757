// Command cardscroll drives the card-stack engine: an interactive terminal
// host, PNG snapshots, and offset traces for tuning profiles.
package main

import (
	"fmt"
	"os"

	"github.com/go-drift/cardscroller/cmd/cardscroll/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
