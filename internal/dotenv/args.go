package dotenv

import (
	"strconv"
	"strings"
)

const argPrefix = "dotenv_config_"

// OptionsFromArgs reads leading dotenv_config_<option>=<value> arguments,
// as used when preloading from a command line:
//
//	dotenv_config_path=./config/.env dotenv_config_silent=true
//
// Recognised options are path, encoding, silent and export_compatible
// (also exportCompatible). Scanning stops at the first argument that is not
// a dotenv_config_ assignment; that argument and everything after it are
// returned as rest. Unknown option names are consumed and ignored.
func OptionsFromArgs(args []string) (opts Options, rest []string) {
	for i, arg := range args {
		name, value, ok := splitArg(arg)
		if !ok {
			return opts, args[i:]
		}
		switch name {
		case "path":
			opts.Path = value
		case "encoding":
			opts.Encoding = value
		case "silent":
			opts.Silent = truthy(value)
		case "export_compatible", "exportCompatible":
			opts.ExportCompatible = truthy(value)
		}
	}
	return opts, nil
}

func splitArg(arg string) (name, value string, ok bool) {
	if !strings.HasPrefix(arg, argPrefix) {
		return "", "", false
	}
	name, value, ok = strings.Cut(strings.TrimPrefix(arg, argPrefix), "=")
	if !ok || name == "" || value == "" {
		return "", "", false
	}
	return name, value, true
}

// truthy parses a boolean flag value. Anything strconv.ParseBool rejects
// counts as true, since the argument was given with a non-empty value.
func truthy(value string) bool {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return true
	}
	return b
}
