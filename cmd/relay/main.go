// Package main provides the entry point for the relay CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/relay/internal/cli"
	"github.com/mrz1836/relay/internal/signal"
)

// Set via ldflags at build time.
//
//nolint:gochecknoglobals // build metadata
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run())
}

func run() int {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()

	err := cli.Execute(handler.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if code, interrupted := handler.ExitCode(); interrupted {
		return code
	}
	return cli.ExitCodeForError(err)
}
