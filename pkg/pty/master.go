package pty

import (
	"os"

	"golang.org/x/sys/unix"
)

// master owns the PTY master descriptor for the lifetime of a spawned
// process. It is never closed by anything but the owning Process: the
// stream and the handle returned by (*Process).Handle are independent
// duplicates with their own lifetimes.
type master struct {
	f *os.File
}

// openMaster opens a fresh PTY master with read/write access.
func openMaster() (*master, error) {
	f, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &master{f: f}, nil
}

func (m *master) Fd() uintptr { return m.f.Fd() }
func (m *master) Close() error {
	if m == nil || m.f == nil {
		return nil
	}
	return m.f.Close()
}

// fileHandle duplicates the master descriptor and wraps the duplicate
// as an independently owned *os.File. Each call yields a new
// descriptor; the caller owns closing it.
func (m *master) fileHandle() (*os.File, error) {
	dupFd, err := unix.Dup(int(m.f.Fd()))
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(dupFd), "pty-master"), nil
}

// grantSlave and unlockSlave and slaveName are implemented per
// platform: master_unix.go covers the general POSIX case (ioctl
// TIOCGPTN/TIOCSPTLCK, the modern devpts equivalent of grantpt/
// unlockpt/ptsname_r); master_darwin.go covers Darwin's
// TIOCPTYGNAME-based resolution.
