// Command pscript is the CLI for the pseudocode toolchain: run, compile to
// C++, and reverse-transpile C++ back to pseudocode.
package main

import (
	"fmt"
	"os"

	"github.com/maiaiia/pseudocronic/cmd/pscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
