package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sadopc/stride/internal/cli"
)

func main() {
	os.Exit(run(&cli.App{}, os.Args[1:], os.Stderr))
}

// run executes the root command and reports a failure once on stderr.
// Logging may not be set up yet when the command fails.
func run(app *cli.App, args []string, stderr io.Writer) int {
	cmd := cli.NewRootCmd(app)
	cmd.SetArgs(args)
	err := cmd.Execute()
	if cerr := app.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
