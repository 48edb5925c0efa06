package backend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies connection failures.
type ErrorKind int

const (
	// MissingDriver means the optional remote backend has not been
	// registered; no connection was attempted.
	MissingDriver ErrorKind = iota
	// OpenFailure means the backend was available but the connection
	// attempt itself failed.
	OpenFailure
)

// ErrMissingDriver matches ConnError values with Kind == MissingDriver via
// errors.Is.
var ErrMissingDriver = errors.New("remote database driver not available")

// ConnError is a failed connection attempt. It is fatal to that attempt only;
// the caller may retry with a different target.
type ConnError struct {
	Kind   ErrorKind
	Target string
	Err    error
}

func (e *ConnError) Error() string {
	if e.Kind == MissingDriver {
		return fmt.Sprintf("postgres driver not available for %q (build includes no remote backend)", e.Target)
	}
	return fmt.Sprintf("cannot open %q: %v", e.Target, e.Err)
}

func (e *ConnError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMissingDriver) identify missing-driver failures
// without unpacking the struct.
func (e *ConnError) Is(target error) bool {
	return target == ErrMissingDriver && e.Kind == MissingDriver
}
