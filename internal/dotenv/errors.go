package dotenv

import (
	"errors"
	"fmt"
	"io/fs"
)

// Failure kinds carried by LoadError. Match them with errors.Is.
var (
	ErrFileNotFound     = errors.New("env file not found")
	ErrPermissionDenied = errors.New("env file not readable")
	ErrRead             = errors.New("cannot read env file")
	ErrDecode           = errors.New("cannot decode env file")
)

// LoadError describes why an env file could not be loaded.
type LoadError struct {
	Path string
	Kind error // one of the Err* kinds above
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *LoadError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

func readError(path string, err error) *LoadError {
	kind := ErrRead
	switch {
	case errors.Is(err, fs.ErrNotExist):
		kind = ErrFileNotFound
	case errors.Is(err, fs.ErrPermission):
		kind = ErrPermissionDenied
	}
	return &LoadError{Path: path, Kind: kind, Err: err}
}

func decodeError(path string, err error) *LoadError {
	return &LoadError{Path: path, Kind: ErrDecode, Err: fmt.Errorf("%s: %w", path, err)}
}
