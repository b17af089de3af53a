package services

import (
	"errors"
	"fmt"

	"github.com/Gopikasanthosh455/placement-app/internal/repositories"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrForbidden        = errors.New("forbidden")
	ErrUnauthorized     = errors.New("unauthorized")

	ErrNotFound       = errors.New("not found")
	ErrJobNotFound    = fmt.Errorf("job %w", ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("user %w", ErrNotFound)
	ErrRecordNotFound = fmt.Errorf("record %w", ErrNotFound)

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrTransientStore marks a failed or timed out store call. Nothing
	// retries it; the caller may.
	ErrTransientStore = errors.New("store unavailable")
	ErrApplyFailed    = errors.New("apply failed")
)

func validationError(err error) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}

// storeError maps a repository error onto the service taxonomy
func storeError(err error, notFound error, op string) error {
	if repositories.IsNotFoundError(err) {
		return notFound
	}
	return fmt.Errorf("%w: failed to %s: %w", ErrTransientStore, op, err)
}
