package iib

import "fmt"

// NoMatchError is returned when the message search yields no index image
// for the requested OCP version. The caller aborts the run before any
// cluster mutation happens.
type NoMatchError struct {
	message string
}

func (e *NoMatchError) Error() string {
	return e.message
}

func NoMatchErrorf(format string, a ...any) *NoMatchError {
	return &NoMatchError{
		message: fmt.Sprintf(format, a...),
	}
}

func (e *NoMatchError) Is(err error) bool {
	_, ok := err.(*NoMatchError)
	return ok
}
