package grid

import "errors"

var (
	// ErrValidation marks a request rejected before any store access.
	ErrValidation = errors.New("validation failed")
	// ErrCheckFailed marks an existence read that could not complete; nothing was written.
	ErrCheckFailed = errors.New("check failed")
	// ErrOperationFailed marks a store read or write that did not complete.
	// State may or may not have changed.
	ErrOperationFailed = errors.New("operation failed")
)
