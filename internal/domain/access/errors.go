package access

import "errors"

var (
	// ErrInvalid covers a missing, unknown or deactivated token. The three
	// cases deliberately share one error so callers can't tell which occurred.
	ErrInvalid = errors.New("link is invalid or has expired")
	// ErrExpired indicates a known, active token past its expiry.
	ErrExpired = errors.New("link has expired")
	// ErrLookupFailed indicates the backing read errored.
	ErrLookupFailed = errors.New("could not validate access")
)

// Message returns the user-facing text for a gate error.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrExpired):
		return "This link has expired."
	case errors.Is(err, ErrLookupFailed):
		return "We could not validate your access. Please try again."
	default:
		return "The link is invalid or has expired."
	}
}
