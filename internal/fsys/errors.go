package fsys

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

var (
	// ErrNotExist indicates the path does not exist.
	ErrNotExist = errors.New("not found")

	// ErrExist indicates the destination already exists.
	ErrExist = errors.New("already exists")

	// ErrPermission indicates access was denied.
	ErrPermission = errors.New("permission denied")

	// ErrIO indicates any other filesystem failure.
	ErrIO = errors.New("i/o error")
)

// Error is a categorized filesystem failure.
type Error struct {
	Op   string
	Path string
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op + " " + e.Path + ": " + e.Kind.Error()
	}
	// Path and link errors from the os package already name the operation.
	var pe *fs.PathError
	var le *os.LinkError
	if errors.As(e.Err, &pe) || errors.As(e.Err, &le) {
		return e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

// Unwrap exposes both the kind and the underlying cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// IsNotExist reports whether err is a not-exist failure.
func IsNotExist(err error) bool {
	return errors.Is(err, ErrNotExist) || errors.Is(err, fs.ErrNotExist)
}

func wrap(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return err
	}
	return &Error{Op: op, Path: path, Kind: kindOf(err), Err: err}
}

func kindOf(err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotExist
	case errors.Is(err, fs.ErrExist), errors.Is(err, syscall.ENOTEMPTY):
		return ErrExist
	case errors.Is(err, fs.ErrPermission):
		return ErrPermission
	default:
		return ErrIO
	}
}
