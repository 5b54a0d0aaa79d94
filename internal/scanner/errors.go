package scanner

import "errors"

var (
	// ErrScanFailed is wrapped by every error Scan returns.
	ErrScanFailed = errors.New("scan failed")

	// ErrNotFound indicates the folder does not exist.
	ErrNotFound = errors.New("folder not found")

	// ErrNotADirectory indicates the path is a file.
	ErrNotADirectory = errors.New("path is not a directory")

	// ErrIO indicates the folder could not be enumerated.
	ErrIO = errors.New("enumeration failed")
)

// scanError joins ErrScanFailed, a kind, and the cause so that errors.Is
// matches all three.
type scanError struct {
	path  string
	kind  error
	cause error
}

func (e *scanError) Error() string {
	msg := ErrScanFailed.Error() + ": " + e.kind.Error() + ": " + e.path
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

func (e *scanError) Unwrap() []error {
	errs := []error{ErrScanFailed, e.kind}
	if e.cause != nil {
		errs = append(errs, e.cause)
	}
	return errs
}

func newScanError(path string, kind, cause error) error {
	return &scanError{path: path, kind: kind, cause: cause}
}
