package workflow

import "errors"

var (
	// ErrBusy indicates an apply for the same folder is already running.
	ErrBusy = errors.New("folder busy")

	// ErrAccessDenied indicates the folder cannot be read or renamed.
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidExternalID indicates a malformed manual external ID.
	ErrInvalidExternalID = errors.New("invalid external id")
)
