package main

import (
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/term"
)

const (
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorReset  = "\033[0m"
)

// palette hands out escape codes, or empty strings when output is not a
// terminal.
type palette struct {
	on bool
}

func paletteFor(w io.Writer) palette {
	f, ok := w.(*os.File)
	return palette{on: ok && term.IsTerminal(int(f.Fd()))}
}

func (p palette) c(code string) string {
	if !p.on {
		return ""
	}
	return code
}

func (p palette) reset() string { return p.c(colorReset) }

// mask hides most of a value so check output can be shared. Short values
// are hidden entirely.
func mask(v string) string {
	if v == "" {
		return ""
	}
	if utf8.RuneCountInString(v) <= 6 {
		return "****"
	}
	return string([]rune(v)[:2]) + "****"
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
