package cmd

import (
	"errors"

	"livery-audit/core/reconcile"
)

// Exit codes.
const (
	// ExitSuccess means every required livery is installed.
	ExitSuccess = 0
	// ExitFailure means the command could not run: bad input, unreadable
	// installation, invalid flags.
	ExitFailure = 1
	// ExitUnmet means the audit ran and found missing liveries.
	ExitUnmet = 2
)

// ExitError wraps an error with an exit code.
type ExitError struct {
	Err  error
	Code int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Err.Error()
}

// Unwrap returns the wrapped error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError determines the appropriate exit code for an error.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, reconcile.ErrUnmetRequirements) {
		return ExitUnmet
	}
	return ExitFailure
}
