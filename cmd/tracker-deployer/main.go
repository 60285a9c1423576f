package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/torrust/tracker-deployer/cmd/tracker-deployer/app"
	"github.com/torrust/tracker-deployer/internal/handler"
	pkgerrors "github.com/torrust/tracker-deployer/pkg/errors"
)

func main() {
	cmd := app.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(report(err))
	}
}

// report prints the one-line error summary, the trace-file path (if any),
// and a Troubleshooting block (spec.md §7), then returns the exit code the
// process should use.
func report(err error) int {
	var herr *handler.HandlerError
	if !errors.As(err, &herr) {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	fmt.Fprintln(os.Stderr, herr.Error())
	if herr.ErrorKind != pkgerrors.ErrorKind("") {
		fmt.Fprintf(os.Stderr, "Troubleshooting (%s): %s\n", herr.ErrorKind, herr.ErrorKind.Troubleshooting())
	}
	return int(herr.ExitCode)
}
