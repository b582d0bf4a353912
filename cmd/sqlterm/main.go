// Command sqlterm translates SQL expression fragments from the command line.
package main

import (
	"os"

	"github.com/bawdo/sqlterm/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
