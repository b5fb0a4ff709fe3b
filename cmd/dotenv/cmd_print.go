package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gandalfthegui/dotenv/internal/dotenv"
)

func newPrintCommand() *cli.Command {
	return &cli.Command{
		Name:  "print",
		Usage: "Print the parsed env file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "output format: " + strings.Join(formats, ", "),
				Value:   "dotenv",
			},
		},
		Action: runPrint,
	}
}

func runPrint(_ context.Context, cmd *cli.Command) error {
	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	values, err := dotenv.Read(opts)
	if err != nil {
		return err
	}
	return writeValues(cmd.Root().Writer, values, cmd.String("format"))
}

func newGetCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "Print the value of one key from the env file",
		ArgsUsage: "<KEY>",
		Action:    runGet,
	}
}

func runGet(_ context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 1 {
		return fmt.Errorf("usage: dotenv get <KEY>")
	}
	key := cmd.Args().First()

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	values, err := dotenv.Read(opts)
	if err != nil {
		return err
	}
	value, ok := values.Get(key)
	if !ok {
		return fmt.Errorf("%s is not defined in %s", key, opts.Path)
	}
	fmt.Fprintln(cmd.Root().Writer, value)
	return nil
}
