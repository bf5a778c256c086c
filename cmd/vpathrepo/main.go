// Package main is the vpathrepo command-line entry point.
package main

import (
	"fmt"
	"os"

	"github.com/vpathfs/repository/cmd/vpathrepo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
