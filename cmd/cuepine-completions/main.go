package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/cuepine/internal/cli"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <bash|zsh|fish|powershell>\n", os.Args[0])
		os.Exit(1)
	}

	if err := cli.GenCompletion(cli.NewRootCmd(), os.Args[1], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
