package pty

import (
	"errors"
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// stream is the byte-level adapter over a duplicated master descriptor
// that spec.md §6 describes as a consumed external collaborator. No
// corpus dependency exposes this exact blocking/try-read shape, so it
// is implemented here as a small leaf rather than pulled in from a
// third party.
//
// Normal Read/Write are blocking, matching the "send/send_line/write
// block if the underlying stream blocks" contract. tryRead is the
// nonblocking variant interact.go needs: it polls the descriptor with
// a zero timeout rather than flipping O_NONBLOCK on the fd, because
// O_NONBLOCK lives on the shared open-file-description and toggling it
// here would affect every other duplicate of the same master fd.
type stream struct {
	f *os.File
}

func newStream(f *os.File) *stream {
	return &stream{f: f}
}

// Read reads from the master descriptor. Once every slave-side fd of
// the PTY has closed, the kernel reports that as EIO on the master
// rather than as a clean EOF (observed on both Linux and Darwin); Read
// translates that into the (0, nil) callers expect from a read past
// end-of-file, matching the "read-after-EOF" contract.
func (s *stream) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	if isEIO(err) {
		return 0, nil
	}
	return n, err
}

func (s *stream) Write(p []byte) (int, error) { return s.f.Write(p) }
func (s *stream) Close() error                { return s.f.Close() }
func (s *stream) Fd() int                     { return int(s.f.Fd()) }

// isEIO reports whether err wraps syscall.EIO, the PTY master's
// signal that the last slave-side fd has closed.
func isEIO(err error) bool {
	return errors.Is(err, syscall.EIO)
}

// tryRead performs a single nonblocking-style read: it reports
// (0, false, nil) immediately if no data is currently available,
// rather than blocking for some to arrive.
func (s *stream) tryRead(buf []byte) (n int, ok bool, err error) {
	pollfd := []unix.PollFd{{Fd: int32(s.Fd()), Events: unix.POLLIN}}
	for {
		pn, perr := unix.Poll(pollfd, 0)
		if perr == unix.EINTR {
			continue
		}
		if perr != nil {
			return 0, false, perr
		}
		if pn == 0 || pollfd[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) == 0 {
			return 0, false, nil
		}
		break
	}

	n, err = s.f.Read(buf)
	if isEIO(err) {
		return 0, true, nil
	}
	if err != nil {
		return n, true, err
	}
	return n, true, nil
}
