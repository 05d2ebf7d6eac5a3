package note

import (
	"fmt"
	"strings"
	"time"
)

// ValidateDraft checks a draft against the creation rules. It is a pure
// function of the draft; a failing draft never reaches the store.
func ValidateDraft(d Draft) error {
	if len(strings.TrimSpace(d.Title)) < 3 {
		return fmt.Errorf("%w: title must be at least 3 characters", ErrValidation)
	}
	if len(strings.TrimSpace(d.Summary)) < 10 {
		return fmt.Errorf("%w: summary must be at least 10 characters", ErrValidation)
	}
	if d.Date == "" {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := time.Parse(DateLayout, d.Date); err != nil {
		return fmt.Errorf("%w: date must be a calendar date (YYYY-MM-DD)", ErrValidation)
	}
	switch d.ClientStatus {
	case "", StatusDone, StatusDeferred, StatusNotDone:
	default:
		return fmt.Errorf("%w: unknown client status %q", ErrValidation, d.ClientStatus)
	}
	return nil
}
