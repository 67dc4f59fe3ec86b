package progress

import "errors"

// ErrInvalidArgument is wrapped by every construction and assignment
// failure. Callers match it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")
