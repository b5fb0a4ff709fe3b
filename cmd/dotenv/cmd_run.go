package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"

	"github.com/creack/pty"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/gandalfthegui/dotenv/internal/dotenv"
	"github.com/gandalfthegui/dotenv/internal/envstore"
)

func newRunCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run a command with the env file loaded into its environment",
		ArgsUsage: "[dotenv_config_<option>=<value>...] [--] <command> [args...]",
		// Everything after "run" belongs to the child command.
		SkipFlagParsing: true,
		Action:          runRun,
	}
}

func runRun(ctx context.Context, cmd *cli.Command) error {
	argOpts, rest := dotenv.OptionsFromArgs(cmd.Args().Slice())
	if len(rest) > 0 && rest[0] == "--" {
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return fmt.Errorf("usage: dotenv run [--] <command> [args...]")
	}

	opts, err := loadOptions(cmd)
	if err != nil {
		return err
	}
	if argOpts.Path != "" {
		opts.Path = argOpts.Path
	}
	if argOpts.Encoding != "" {
		opts.Encoding = argOpts.Encoding
	}
	opts.Silent = opts.Silent || argOpts.Silent
	opts.ExportCompatible = opts.ExportCompatible || argOpts.ExportCompatible
	opts.Env = envstore.OS{}

	// A failed load is reported but the command still runs with whatever
	// environment it inherited.
	dotenv.Config(opts)

	child := exec.CommandContext(ctx, rest[0], rest[1:]...)
	child.Env = os.Environ()

	root := cmd.Root()
	if in, ok := ttyFile(root.Reader); ok {
		if out, ok := ttyFile(root.Writer); ok {
			err = runPTY(child, in, out)
			return exitStatus(err)
		}
	}

	child.Stdin = root.Reader
	child.Stdout = root.Writer
	child.Stderr = root.ErrWriter
	return exitStatus(child.Run())
}

func ttyFile(v any) (*os.File, bool) {
	f, ok := v.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil, false
	}
	return f, true
}

// runPTY runs child on a new pseudo-terminal wired to the caller's terminal,
// so interactive programs behave as if started directly.
func runPTY(child *exec.Cmd, in, out *os.File) error {
	ptmx, err := pty.Start(child)
	if err != nil {
		return fmt.Errorf("start %s: %w", child.Path, err)
	}
	defer ptmx.Close()

	// Forward terminal resize events.
	winchCh := make(chan os.Signal, 1)
	signal.Notify(winchCh, syscall.SIGWINCH)
	go func() {
		for range winchCh {
			pty.InheritSize(in, ptmx)
		}
	}()
	winchCh <- syscall.SIGWINCH // initial size
	defer func() {
		signal.Stop(winchCh)
		close(winchCh)
	}()

	// Without raw mode the child still runs, just with line-buffered input.
	fd := int(in.Fd())
	restore := func() {}
	if oldState, err := term.MakeRaw(fd); err == nil {
		var restoreOnce sync.Once
		restore = func() {
			restoreOnce.Do(func() { term.Restore(fd, oldState) })
		}
	}
	defer restore()

	go io.Copy(ptmx, in)
	// Returns once the child closes its side of the terminal.
	io.Copy(out, ptmx)

	err = child.Wait()
	restore()
	return err
}

// exitStatus turns a child's non-zero exit into an exitError carrying the
// same code.
func exitStatus(err error) error {
	if err == nil {
		return nil
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		code := ee.ExitCode()
		if code < 0 {
			code = 1
		}
		return &exitError{code: code}
	}
	return err
}
