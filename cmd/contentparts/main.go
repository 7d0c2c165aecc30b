// Command contentparts installs, renders and edits content parts against an
// in-memory definition store seeded from recipes.
package main

import (
	"fmt"
	"io"
	"os"
)

// Version is overridden at build time.
var Version = "dev"

func main() {
	runMain(os.Args, os.Stdout, os.Stderr, os.Exit)
}

// execute runs the CLI with args and the given output writers.
func execute(args []string, stdout, stderr io.Writer) error {
	cmd := newRootCmd()
	cmd.Version = Version
	if len(args) > 1 {
		cmd.SetArgs(args[1:])
	} else {
		cmd.SetArgs(nil)
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

func runMain(args []string, stdout, stderr io.Writer, exit func(int)) {
	if err := execute(args, stdout, stderr); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		exit(1)
	}
}
