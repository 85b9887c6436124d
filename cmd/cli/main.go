// Package main is the entry point for the finsight CLI binary.
package main

import (
	"os"

	cli "finsight/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
