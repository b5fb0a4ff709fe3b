// dotenv – load KEY=VALUE files into the environment.
//
// Usage:
//
//	dotenv check                     – load .env and report which keys apply
//	dotenv print [--format f]        – print the parsed file (dotenv, shell, json, yaml, toml)
//	dotenv get <KEY>                 – print one value
//	dotenv set <KEY> <VALUE>         – add or replace an entry in the file
//	dotenv run [--] <cmd> [args...]  – run a command with the file loaded
//
// Global flags (--path, --encoding, --silent, --export) override the values
// in the profile file (.dotenv.yaml, or --profile / $DOTENV_PROFILE).
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(ctx, os.Args); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "dotenv: %v\n", err)
		os.Exit(1)
	}
}

// exitError carries a child or check exit status up to main without a
// message of its own.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
