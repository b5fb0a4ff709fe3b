package envfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnrepresentable is returned by SetEntry for a value that no env file
// line reads back unchanged.
var ErrUnrepresentable = errors.New("value cannot be stored in an env file")

// FormatLine renders a single KEY=VALUE line that Parse reads back as value.
//
// Values with surrounding whitespace, a leading $ or a leading \$ cannot be
// represented exactly; neither can values holding both a newline and a
// literal backslash-n, nor values containing \r, U+2028 or U+2029.
func FormatLine(key, value string) string {
	switch {
	case value == "":
		return key + "="
	case strings.Contains(value, "\n"):
		return key + `="` + strings.ReplaceAll(value, "\n", `\n`) + `"`
	case isQuote(value[0]) || isQuote(value[len(value)-1]):
		return key + "='" + value + "'"
	default:
		return key + "=" + value
	}
}

// Marshal renders v as one line per key in definition order.
func Marshal(v *Values) string {
	var b strings.Builder
	v.Each(func(key, value string) {
		b.WriteString(FormatLine(key, value))
		b.WriteByte('\n')
	})
	return b.String()
}

// SetEntry writes key=value into the env file at path. The first line that
// assigns key (with or without an export prefix) is replaced in place and any
// later assignments of key are removed; otherwise the entry is appended.
// Comments, blank lines and ordering are kept. A missing file is created with
// mode 0600. Values that would not load back unchanged are rejected with
// ErrUnrepresentable and the file is left untouched.
func SetEntry(path, key, value string) error {
	if !validKey(key) {
		return fmt.Errorf("invalid key %q", key)
	}
	newLine := FormatLine(key, value)
	if !roundTrips(newLine, key, value) {
		return fmt.Errorf("set %s=%q: %w", key, value, ErrUnrepresentable)
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("read env file: %w", err)
	}

	var lines []string
	if len(existing) > 0 {
		lines = strings.Split(strings.TrimSuffix(string(existing), "\n"), "\n")
	}

	found := false
	kept := lines[:0]
	for _, line := range lines {
		m := exportLinePattern.FindStringSubmatch(line)
		if m == nil || m[1] != key {
			kept = append(kept, line)
			continue
		}
		// Parse keeps the last assignment, so later duplicates are dropped.
		if !found {
			kept = append(kept, newLine)
			found = true
		}
	}
	lines = kept
	if !found {
		// Drop trailing blank lines before appending the new entry.
		for len(lines) > 0 && trim(lines[len(lines)-1]) == "" {
			lines = lines[:len(lines)-1]
		}
		lines = append(lines, newLine)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create env file directory: %w", err)
		}
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("write env file: %w", err)
	}
	return nil
}

// roundTrips reports whether line parses back to exactly key=value with
// nothing available for substitution.
func roundTrips(line, key, value string) bool {
	got, ok := ParseString(line, Options{Lookup: func(string) (string, bool) { return "", false }}).Get(key)
	return ok && got == value
}

// validKey reports whether key is made only of word characters, dots and
// hyphens.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '_', c == '.', c == '-':
		default:
			return false
		}
	}
	return true
}
