package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/gandalfthegui/dotenv/internal/envfile"
)

func newSetCommand() *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Add or replace an entry in the env file",
		ArgsUsage: "<KEY> <VALUE>",
		Action:    runSet,
	}
}

// runSet replaces any existing assignment rather than appending, so repeated
// calls don't accumulate stale entries.
func runSet(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 2 {
		return fmt.Errorf("usage: dotenv set <KEY> <VALUE>")
	}
	key, value := cmd.Args().Get(0), cmd.Args().Get(1)

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if err := envfile.SetEntry(opts.Path, key, value); err != nil {
		return err
	}

	w := cmd.Root().Writer
	p := paletteFor(w)
	fmt.Fprintf(w, "%s✓  Saved%s %s %s%s%s\n", p.c(colorGreen+colorBold), p.reset(), key, p.c(colorDim), opts.Path, p.reset())
	return nil
}
