package service

import "errors"

// Domain errors shared by all services. Handlers translate these into HTTP
// statuses in one place; store-level conflicts (a row vanishing between read
// and conditioned write) all surface as ErrConflict.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("invalid input")
	ErrIDMismatch = errors.New("path id does not match payload id")
	ErrConflict   = errors.New("conflicting concurrent update")
)
