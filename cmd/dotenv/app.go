package main

import (
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/gandalfthegui/dotenv/internal/dotenv"
)

const defaultProfile = ".dotenv.yaml"

// newApp builds the root command. Streams are injected so tests can drive
// the CLI without touching the real terminal.
func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "dotenv",
		Usage:     "Load KEY=VALUE files into the environment",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "env file to read (default: .env)",
			},
			&cli.StringFlag{
				Name:    "encoding",
				Aliases: []string{"e"},
				Usage:   "text encoding of the env file (default: utf8)",
			},
			&cli.BoolFlag{
				Name:    "silent",
				Aliases: []string{"s"},
				Usage:   "do not log load failures",
			},
			&cli.BoolFlag{
				Name:    "export",
				Aliases: []string{"x"},
				Usage:   "accept lines prefixed with 'export'",
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "YAML file with default options",
				Value:   defaultProfile,
				Sources: cli.EnvVars("DOTENV_PROFILE"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			newCheckCommand(),
			newPrintCommand(),
			newGetCommand(),
			newSetCommand(),
			newRunCommand(),
		},
	}
}

// loadOptions layers explicit flags over the profile file over the loader
// defaults.
func loadOptions(cmd *cli.Command) (dotenv.Options, error) {
	p, err := loadProfile(cmd.String("profile"))
	if err != nil {
		return dotenv.Options{}, err
	}
	opts := p.options()

	if cmd.IsSet("path") {
		opts.Path = cmd.String("path")
	}
	if cmd.IsSet("encoding") {
		opts.Encoding = cmd.String("encoding")
	}
	if cmd.IsSet("silent") {
		opts.Silent = cmd.Bool("silent")
	}
	if cmd.IsSet("export") {
		opts.ExportCompatible = cmd.Bool("export")
	}
	if opts.Path == "" {
		opts.Path = dotenv.DefaultPath
	}
	opts.Logger = newLogger(cmd)
	return opts, nil
}

func newLogger(cmd *cli.Command) *slog.Logger {
	level := slog.LevelInfo
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level}))
}
