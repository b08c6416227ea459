package errors

import "errors"

// Common error types used across the goasync library

var (
	// ErrClosed indicates that an operation was attempted on a closed executor or client
	ErrClosed = errors.New("resource is closed")

	// ErrAlreadyRunning indicates that a run loop was started while one is already active
	ErrAlreadyRunning = errors.New("already running")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrInvalidConfiguration indicates invalid configuration parameters
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// IsRetryable returns true if the error indicates a condition that might
// be resolved by retrying the operation
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout)
}

// IsTerminal returns true if the error indicates a condition that no
// amount of retrying will resolve
func IsTerminal(err error) bool {
	return errors.Is(err, ErrClosed) || errors.Is(err, ErrInvalidConfiguration)
}
