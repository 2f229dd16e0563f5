// Command exprlang is the CLI front-end for the expression language and
// canonical JSON / integrity subsystems.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/exprlang/cmd/exprlang/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
