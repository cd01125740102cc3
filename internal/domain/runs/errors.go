package runs

import "errors"

// ErrRunNotFound is returned when no run matches the requested ID
var ErrRunNotFound = errors.New("run not found")

// ErrInvalidParameter is returned when a run is requested with an out of range parameter
var ErrInvalidParameter = errors.New("invalid run parameter")
