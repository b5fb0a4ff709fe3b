package dotenv

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

var (
	errInvalidUTF8  = errors.New("invalid utf-8")
	errInvalidASCII = errors.New("byte outside ascii range")
)

// decode converts raw file content to text. Short names follow the usual
// dotenv conventions (utf8, latin1, ucs2, ...); anything else is looked up
// as an IANA charset name.
func decode(data []byte, name string) (string, error) {
	switch normalizeEncoding(name) {
	case "utf8":
		if !utf8.Valid(data) {
			return "", errInvalidUTF8
		}
		return string(data), nil
	case "ascii", "usascii":
		for _, c := range data {
			if c >= utf8.RuneSelf {
				return "", errInvalidASCII
			}
		}
		return string(data), nil
	case "utf16le", "ucs2":
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case "latin1", "binary":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}

	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func normalizeEncoding(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "").Replace(name)
}
