package xdo

import (
	"errors"
	"fmt"
)

var (
	// ErrInit is matched by every error returned from New when no handle
	// could be created.
	ErrInit = errors.New("could not initialize xdo")

	// ErrClosed is returned by operations on a Context after Close.
	ErrClosed = errors.New("xdo context closed")

	// ErrInvalidDelay is returned by ParseDelay for values which are neither
	// a duration nor an integer number of microseconds.
	ErrInvalidDelay = errors.New("delay should be either a duration or an integer")
)

// Error is returned when a native call reports failure.
type Error struct {
	Op   string // Name of the failing native call
	Code int    // Non-zero result code
	Err  error  // Underlying cause, if the backend has one
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("function %s returned error code %d: %s", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("function %s returned error code %d", e.Op, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// InitError is returned by New when the backend could not produce a handle,
// usually because the display could not be opened.
type InitError struct {
	Backend Backend
	Display string
	Err     error
}

func (e *InitError) Error() string {
	display := e.Display
	if display == "" {
		display = "default display"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s (%s, %s): %s", ErrInit, e.Backend, display, e.Err)
	}
	return fmt.Sprintf("%s (%s, %s)", ErrInit, e.Backend, display)
}

func (e *InitError) Is(target error) bool {
	return target == ErrInit
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// check converts a native status code into an error. Zero is success.
func check(op string, code int) error {
	if code == statusSuccess {
		return nil
	}
	return &Error{Op: op, Code: code}
}

// fail wraps a backend error as a failure of the given call.
func fail(op string, err error) error {
	if err == nil {
		return nil
	}
	var xerr *Error
	if errors.As(err, &xerr) {
		return err
	}
	return &Error{Op: op, Code: statusError, Err: err}
}
