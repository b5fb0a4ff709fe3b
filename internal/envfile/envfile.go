// Package envfile parses dotenv-style files into an ordered set of key-value
// pairs and writes them back out.
//
// Parsing is total: lines that do not look like KEY=VALUE are skipped, never
// reported. The parser reads nothing but its input and, for $NAME references
// that the file itself does not define, the lookup function in Options.
package envfile

import (
	"os"
	"regexp"
	"strings"
)

// whitespace is the character class used for \s in the line patterns and
// for trimming values. It matches the ECMAScript definition so files written
// for other dotenv loaders split the same way.
const whitespace = `\t\n\v\f\r \x{a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

// valueChars excludes line terminators: a trailing \r is left for the final
// whitespace run, a \r inside a value makes the line not match.
const valueChars = `[^\n\r\x{2028}\x{2029}]`

var (
	linePattern = regexp.MustCompile(
		`^[` + whitespace + `]*([\w.\-]+)[` + whitespace + `]*=[` + whitespace + `]*(` + valueChars + `*)?[` + whitespace + `]*$`)
	exportLinePattern = regexp.MustCompile(
		`^[` + whitespace + `]*(?:export[` + whitespace + `]*)?([\w.\-]+)[` + whitespace + `]*=[` + whitespace + `]*(` + valueChars + `*)?[` + whitespace + `]*$`)
)

// LookupFunc resolves a variable that is not defined earlier in the file.
type LookupFunc func(key string) (string, bool)

// Options control a single Parse call.
type Options struct {
	// ExportCompatible accepts an optional leading "export" keyword.
	ExportCompatible bool

	// Lookup is consulted for $NAME references the file has not defined
	// (or defined as empty). Nil means os.LookupEnv.
	Lookup LookupFunc
}

// Parse turns src into its key-value pairs. Later assignments of a key
// replace earlier ones.
func Parse(src []byte, opts Options) *Values {
	lookup := opts.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	pattern := linePattern
	if opts.ExportCompatible {
		pattern = exportLinePattern
	}

	values := NewValues()
	for _, line := range strings.Split(string(src), "\n") {
		m := pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		values.set(m[1], resolve(m[2], values, lookup))
	}
	return values
}

// ParseString is Parse for callers holding a string.
func ParseString(src string, opts Options) *Values {
	return Parse([]byte(src), opts)
}

// resolve applies quote handling, substitution and escaping to a raw
// captured value. The order of the steps is significant.
func resolve(value string, seen *Values, lookup LookupFunc) string {
	if n := len(value); n > 0 && value[0] == '"' && value[n-1] == '"' {
		value = strings.ReplaceAll(value, `\n`, "\n")
	}

	value = trim(unquote(value))

	if strings.HasPrefix(value, "$") {
		value = substitute(value[1:], seen, lookup)
	}

	// \$NAME is kept literally, minus the backslash.
	if strings.HasPrefix(value, `\$`) {
		value = value[1:]
	}
	return value
}

// unquote drops one leading and one trailing quote character. The two need
// not match.
func unquote(value string) string {
	if value != "" && isQuote(value[0]) {
		value = value[1:]
	}
	if n := len(value); n > 0 && isQuote(value[n-1]) {
		value = value[:n-1]
	}
	return value
}

func substitute(name string, seen *Values, lookup LookupFunc) string {
	if v, ok := seen.Get(name); ok && v != "" {
		return v
	}
	if v, ok := lookup(name); ok && v != "" {
		return v
	}
	return ""
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// isSpace reports whether r belongs to the whitespace class above.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ',
		0xa0, 0x1680, 0x2028, 0x2029, 0x202f, 0x205f, 0x3000, 0xfeff:
		return true
	}
	return r >= 0x2000 && r <= 0x200a
}
