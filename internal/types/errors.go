package types

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ConversionError reports an engine integer code that does not match any
// recognized enumerant.
type ConversionError struct {
	Raw int
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("value %d is not a recognized status code", e.Raw)
}

// SystemError reports a negative engine result. The OS error number is
// preserved verbatim for diagnostics.
type SystemError struct {
	Errno unix.Errno
}

func (e *SystemError) Error() string {
	return fmt.Sprintf("engine call failed: %v (errno %d)", e.Errno, int(e.Errno))
}

// Unwrap exposes the underlying errno so callers can match it with
// errors.Is(err, unix.ENOENT) and friends.
func (e *SystemError) Unwrap() error {
	return e.Errno
}

// Code returns the OS error number as reported by the engine.
func (e *SystemError) Code() int {
	return int(e.Errno)
}

// UUIDError reports engine-returned text that is not syntactically a valid
// UUID.
type UUIDError struct {
	Value string
	Err   error
}

func (e *UUIDError) Error() string {
	return fmt.Sprintf("engine returned malformed UUID %q: %v", e.Value, e.Err)
}

func (e *UUIDError) Unwrap() error {
	return e.Err
}

// DecodeError reports an internally inconsistent raw metadata record: a
// length mismatch, invalid text encoding, or an unexpected null in a
// mandatory field.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("cannot decode field %q: %s", e.Field, e.Reason)
}

// CheckResult translates the engine's combined return channel for calls that
// carry no payload: zero or greater is success, a negative value is a
// negated OS error number. Every engine result passes through here or
// through ParseStatusResult; query operations never interpret raw integers
// themselves.
func CheckResult(ret int) error {
	if ret < 0 {
		return &SystemError{Errno: unix.Errno(-ret)}
	}
	return nil
}
