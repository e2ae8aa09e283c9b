package pty

import (
	"errors"
	"fmt"
	"syscall"
)

// ErrBadControlCharacter is returned when a control-code mnemonic cannot
// be resolved to a byte (see controlcode.go).
var ErrBadControlCharacter = errors.New("pty: bad control character")

// ErrUnsupportedOperation is returned when a requested control
// operation has no meaning on the current platform or PTY state.
var ErrUnsupportedOperation = errors.New("pty: unsupported operation")

// SpawnError reports that the child reported a failing errno for the
// exec call over the exec-error channel (see execerr.go). It always
// carries the underlying syscall.Errno so callers can compare against
// well-known values such as syscall.ENOENT.
type SpawnError struct {
	Path  string
	Errno syscall.Errno
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("pty: exec %q: %s", e.Path, e.Errno)
}

func (e *SpawnError) Unwrap() error { return e.Errno }

// newSpawnError builds a SpawnError from any error returned by the
// exec machinery, pulling the syscall.Errno out of whatever wrapper
// (*exec.Error, *os.PathError, ...) carried it.
func newSpawnError(path string, err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		// Round-trip through the exec-error channel's wire format so the
		// errno we report is exactly what a child reporting over the
		// pipe would have sent.
		decoded, decodeErr := DecodeErrno(EncodeErrno(errno))
		if decodeErr == nil {
			errno = decoded
		}
		return &SpawnError{Path: path, Errno: errno}
	}
	// No errno to report (e.g. "already started"); surface as-is rather
	// than inventing one.
	return fmt.Errorf("pty: exec %q: %w", path, err)
}
