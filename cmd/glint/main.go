// Command glint is the entry point for glint's CLI: serve, traces, logs,
// clean, info and tui.
package main

import (
	"os"

	"glint/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
