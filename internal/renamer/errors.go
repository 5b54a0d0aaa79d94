// internal/renamer/errors.go
package renamer

import (
	"errors"
	"strings"
)

var (
	// ErrApplyFailed is matched by every error Apply returns.
	ErrApplyFailed = errors.New("apply failed")

	// ErrConflict indicates the target exists and is not the source.
	ErrConflict = errors.New("conflict")

	// ErrIO indicates a filesystem operation failed.
	ErrIO = errors.New("i/o error")

	// ErrInvalidPlan indicates the plan breaks its own invariants.
	ErrInvalidPlan = errors.New("invalid plan")
)

// ApplyError describes a failed apply. It matches ErrApplyFailed, its Kind,
// and the underlying cause with errors.Is.
type ApplyError struct {
	Kind error
	Op   string
	Path string
	Err  error
	// RolledBack is the number of journal entries undone.
	RolledBack int
}

func (e *ApplyError) Error() string {
	var b strings.Builder
	b.WriteString(ErrApplyFailed.Error())
	b.WriteString(": ")
	b.WriteString(e.Kind.Error())
	if e.Op != "" {
		b.WriteString(": " + e.Op)
	}
	if e.Path != "" {
		b.WriteString(" " + e.Path)
	}
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *ApplyError) Unwrap() []error {
	errs := []error{ErrApplyFailed, e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}
