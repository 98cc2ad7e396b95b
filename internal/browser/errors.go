package browser

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNavigation      = errors.New("navigation failed")
	ErrElementNotFound = errors.New("element not found")
	ErrSaveFailed      = errors.New("save failed")
	ErrSessionStart    = errors.New("browser session could not be started")
	ErrTimeout         = errors.New("timeout")

	ErrEmptySelector       = errors.New("selector is empty")
	ErrInvalidSelector     = errors.New("invalid selector")
	ErrUnsupportedSelector = errors.New("selector not supported by driver")
	ErrUnknownDriver       = errors.New("unknown browser driver")
)

// IsTimeout reports whether err was caused by an expired timeout
func IsTimeout(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded)
}

func wrapErr(kind, err error, timedOut bool) error {
	if timedOut {
		return fmt.Errorf("%w (%w): %w", kind, ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}
