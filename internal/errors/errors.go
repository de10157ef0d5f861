package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/habitrack/internal/logger"
)

var (
	// ErrValidation is returned when a required field is empty or malformed
	ErrValidation = errors.New("validation error")
	// ErrNotFound is returned when a habit or completion id does not exist
	ErrNotFound = errors.New("not found")
	// ErrIntegrity is returned when the store rejects a write on a foreign key
	ErrIntegrity = errors.New("integrity error")
	// ErrStorage wraps I/O and driver failures. These are not retried.
	ErrStorage = errors.New("storage error")
)

// Validationf returns an ErrValidation with a formatted message
func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf returns an ErrNotFound with a formatted message
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Integrity wraps a driver constraint error as ErrIntegrity
func Integrity(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrIntegrity, op, err)
}

// Storage wraps a driver or I/O error as ErrStorage. Errors that already
// carry one of the taxonomy sentinels are returned unchanged.
func Storage(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

// Classified reports whether err already carries one of the taxonomy sentinels
func Classified(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrIntegrity) || errors.Is(err, ErrStorage)
}

// IsUserFacing reports whether err should be shown to the user as a warning
// rather than treated as a failure of the application.
func IsUserFacing(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrNotFound)
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	if IsUserFacing(err) {
		return fmt.Sprintf("Warning: %v", err)
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		if IsUserFacing(err) {
			logger.Warn("Command rejected", "error", err)
		} else {
			logger.Error("Command execution failed", "error", err)
		}
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
