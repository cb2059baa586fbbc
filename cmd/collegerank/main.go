// Collegerank - College Admission Ranking and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collegerank

// Command collegerank recommends colleges for an expected admission rank.
//
// It loads historical opening/closing rank tables, college profiles,
// placement statistics and student reviews from a CSV directory, forecasts
// each (institute, program) closing rank for the target year and ranks the
// candidates that a student with the given rank can expect to get.
//
// # Commands
//
//	collegerank serve                      run the HTTP API
//	collegerank recommend --rank --program query once from the shell
//	collegerank metadata                   list filter values in the corpus
//	collegerank top [--n 10]               best-ranked institutes
//	collegerank rules mine [--force]       mine association rules to disk
//	collegerank rules show                 print the persisted rules
//
// # Configuration
//
// Settings are layered: built-in defaults, then a YAML file (--config,
// $CONFIG_PATH or ./config.yaml), then environment variables such as
// DATA_ROOT, HTTP_PORT and LOG_LEVEL. See internal/config for the full list.
//
// # Example Usage
//
//	export DATA_ROOT=/srv/collegerank
//	collegerank recommend --rank 4500 --program "Computer Science" --quota AI
//	collegerank serve
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}
