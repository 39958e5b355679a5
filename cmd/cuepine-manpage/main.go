package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/cuepine/internal/cli"
	"github.com/arthur-debert/cuepine/internal/version"
	"github.com/spf13/cobra/doc"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "CUEPINE",
		Section: "1",
		Source:  "cuepine " + version.Version,
		Manual:  "cuepine manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
