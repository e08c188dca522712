// groupby groups table rows read from stdin into sub-tables keyed by date.
package main

import (
	"fmt"
	"os"

	"github.com/bjaus/groupby/internal/cli"
)

var version = "0.1.0"

func main() {
	root := cli.NewRootCommand(version, os.Stdin, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.Describe(err))
		os.Exit(1)
	}
}
