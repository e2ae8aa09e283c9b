//go:build darwin

package pty

import (
	"syscall"
	"unsafe"
)

// tiocptygname is the Darwin ioctl for resolving a PTY master's slave
// device name; not exposed by golang.org/x/sys/unix, so it's dialed
// directly as the teacher's Darwin PTY path does.
const tiocptygname = 0x40807453

// grantSlave is a no-op on modern Darwin: slave permissions are
// handled automatically once the master is open.
func (m *master) grantSlave() error { return nil }

// unlockSlave is a no-op on modern Darwin: PTYs are unlocked by
// default.
func (m *master) unlockSlave() error { return nil }

// slaveName resolves the slave device path via TIOCPTYGNAME into the
// fixed 128-byte buffer sys/ttycom.h defines for this ioctl.
func (m *master) slaveName() (string, error) {
	var buf [128]byte
	_, _, errno := syscall.Syscall(syscall.SYS_IOCTL, m.f.Fd(), tiocptygname, uintptr(unsafe.Pointer(&buf[0])))
	if errno != 0 {
		return "", errno
	}
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i]), nil
		}
	}
	return string(buf[:]), nil
}
