package oerror

import "fmt"

// LocomotionError is the error type returned by the locomotion packages when a failure has to be surfaced
// to the caller, for example when a wire message cannot be decoded.
type LocomotionError struct {
	Err string
}

// New returns a new error built from the given format and arguments.
func New(format string, args ...any) error {
	if len(args) == 0 {
		return &LocomotionError{Err: format}
	}
	return &LocomotionError{Err: fmt.Sprintf(format, args...)}
}

func (e *LocomotionError) Error() string {
	return e.Err
}
