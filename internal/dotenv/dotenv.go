// Package dotenv loads an env file into an environment store.
//
// Values already present in the store win: a key is only written when the
// store holds no value for it or holds the empty string. Config is the
// boolean entry point; Configure returns the details and a structured error
// for callers that want them.
//
// Loading is meant to run once at startup. The merge reads and then writes
// each key without holding a lock across the two steps, so concurrent loads
// into the same store, or an external writer racing a load, may interleave.
package dotenv

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gandalfthegui/dotenv/internal/envfile"
	"github.com/gandalfthegui/dotenv/internal/envstore"
)

const (
	DefaultPath     = ".env"
	DefaultEncoding = "utf8"
)

// Options configure a load. The zero value loads ./.env as UTF-8 into the
// process environment and logs failures to stderr.
type Options struct {
	Path             string
	Encoding         string
	Silent           bool // suppress the failure log line
	ExportCompatible bool // accept "export KEY=VALUE" lines

	// Env receives the values and backs $NAME lookups the file cannot
	// resolve. Nil means the process environment.
	Env envstore.Store

	// Logger receives failure and debug records. Nil means a text logger
	// on stderr.
	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.Path == "" {
		o.Path = DefaultPath
	}
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if o.Env == nil {
		o.Env = envstore.OS{}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return o
}

// Result reports what a successful load did.
type Result struct {
	Path   string
	Values *envfile.Values

	Applied []string // keys written to the store, in file order
	Skipped []string // keys the store already held a value for
}

// Config loads the env file described by opts and reports whether it
// succeeded. Failures are logged unless opts.Silent is set.
func Config(opts Options) bool {
	o := opts.withDefaults()
	res, err := Configure(o)
	if err != nil {
		if !o.Silent {
			o.Logger.Error("failed to load env file", "path", o.Path, "error", err)
		}
		return false
	}
	o.Logger.Debug("loaded env file",
		"path", res.Path,
		"applied", len(res.Applied),
		"skipped", len(res.Skipped),
	)
	return true
}

// Load is an alias for Config.
func Load(opts Options) bool {
	return Config(opts)
}

// Configure loads the env file and merges it into opts.Env.
func Configure(opts Options) (*Result, error) {
	o := opts.withDefaults()

	values, err := Read(o)
	if err != nil {
		return nil, err
	}

	res := &Result{Path: o.Path, Values: values}
	for _, key := range values.Keys() {
		if envstore.IsSet(o.Env, key) {
			res.Skipped = append(res.Skipped, key)
			continue
		}
		value, _ := values.Get(key)
		if err := o.Env.Set(key, value); err != nil {
			return res, fmt.Errorf("set %s: %w", key, err)
		}
		res.Applied = append(res.Applied, key)
	}
	return res, nil
}

// Read loads and parses the env file without touching the store. $NAME
// references the file cannot resolve are looked up in opts.Env.
func Read(opts Options) (*envfile.Values, error) {
	o := opts.withDefaults()

	data, err := os.ReadFile(o.Path)
	if err != nil {
		return nil, readError(o.Path, err)
	}
	text, err := decode(data, o.Encoding)
	if err != nil {
		return nil, decodeError(o.Path, err)
	}
	return envfile.ParseString(text, envfile.Options{
		ExportCompatible: o.ExportCompatible,
		Lookup:           o.Env.Lookup,
	}), nil
}
