package main

import (
	"os"

	"github.com/arthur-debert/cuepine/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
