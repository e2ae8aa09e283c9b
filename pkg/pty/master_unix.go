//go:build !darwin

package pty

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// grantSlave grants access to the slave side of the PTY pair. On
// modern Linux/BSD devpts, permissions are already correct once the
// master is open; we still probe TIOCGPTN to surface a real error if
// the descriptor somehow isn't a PTY master.
func (m *master) grantSlave() error {
	_, err := unix.IoctlGetInt(int(m.f.Fd()), unix.TIOCGPTN)
	return err
}

// unlockSlave unlocks the slave side via TIOCSPTLCK, the ioctl
// equivalent of unlockpt(3) that devpts exposes without requiring the
// legacy /dev/ptmx locking dance.
func (m *master) unlockSlave() error {
	return unix.IoctlSetPointerInt(int(m.f.Fd()), unix.TIOCSPTLCK, 0)
}

// slaveName resolves the slave device path by asking the kernel for
// the PTY number (TIOCGPTN) and formatting the devpts path, the
// TIOCGPTN-based equivalent of the reentrant ptsname_r(3) resolver.
func (m *master) slaveName() (string, error) {
	n, err := unix.IoctlGetInt(int(m.f.Fd()), unix.TIOCGPTN)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/dev/pts/%d", n), nil
}
