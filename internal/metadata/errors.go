package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrLookupFailed is wrapped by every lookup failure.
	ErrLookupFailed = errors.New("lookup failed")

	// ErrMissingCredential indicates no API key is configured.
	ErrMissingCredential = errors.New("missing API credential")

	// ErrNoResults indicates the provider found nothing for the query.
	ErrNoResults = errors.New("no results")

	// ErrMissingExternalID indicates the provider record has no external ID.
	ErrMissingExternalID = errors.New("missing external ID")

	// ErrInvalidResponse indicates the provider returned an unusable response.
	ErrInvalidResponse = errors.New("invalid response")
)

// Failed builds a lookup error of the given kind. The result matches both
// ErrLookupFailed and kind with errors.Is.
func Failed(kind error, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	if detail == "" {
		return fmt.Errorf("%w: %w", ErrLookupFailed, kind)
	}
	return fmt.Errorf("%w: %w: %s", ErrLookupFailed, kind, detail)
}
