package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/gandalfthegui/dotenv/internal/dotenv"
	"github.com/gandalfthegui/dotenv/internal/envstore"
)

func newCheckCommand() *cli.Command {
	return &cli.Command{
		Name:  "check",
		Usage: "Load the env file against a copy of the current environment and report the result",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "show",
				Usage: "print values (truncated) instead of masking them",
			},
		},
		Action: runCheck,
	}
}

// runCheck never modifies the real environment: it merges into a snapshot
// so the report shows exactly what Config would do.
func runCheck(_ context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	env := envstore.FromEnviron(os.Environ())
	opts.Env = env

	res, err := dotenv.Configure(opts)
	if err != nil {
		if !opts.Silent {
			ew := cmd.Root().ErrWriter
			p := paletteFor(ew)
			fmt.Fprintf(ew, "%s✗  Could not load%s %s\n", p.c(colorRed+colorBold), p.reset(), opts.Path)
			opts.Logger.Error("failed to load env file", "path", opts.Path, "error", err)
		}
		return &exitError{code: 1}
	}

	show := func(v string) string {
		if cmd.Bool("show") {
			return truncate(v, 60)
		}
		return mask(v)
	}

	w := cmd.Root().Writer
	p := paletteFor(w)
	fmt.Fprintf(w, "%s✓  Loaded%s %s%s%s %s(%d keys)%s\n",
		p.c(colorGreen+colorBold), p.reset(),
		p.c(colorCyan), res.Path, p.reset(),
		p.c(colorDim), res.Values.Len(), p.reset())

	for _, key := range res.Applied {
		fmt.Fprintf(w, "  %s+%s %s=%s\n", p.c(colorGreen), p.reset(), key, show(envstore.Get(env, key)))
	}
	for _, key := range res.Skipped {
		fmt.Fprintf(w, "  %s=%s %s %s(already set)%s\n", p.c(colorYellow), p.reset(), key, p.c(colorDim), p.reset())
	}
	return nil
}
