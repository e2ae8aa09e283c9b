//go:build !darwin

package termios

import "golang.org/x/sys/unix"

// GetEcho reports whether the ECHO local flag is set on fd.
func GetEcho(fd int) (bool, error) {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return false, err
	}
	return t.Lflag&unix.ECHO != 0, nil
}

// SetEcho sets or clears the ECHO local flag on fd, applied
// immediately (TCSANOW).
func SetEcho(fd int, on bool) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}
	if on {
		t.Lflag |= unix.ECHO
	} else {
		t.Lflag &^= unix.ECHO
	}
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}

// SetRaw clears canonical input processing using the standard "make
// raw" transform, applied immediately.
func SetRaw(fd int) error {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return err
	}

	t.Iflag &^= unix.IGNBRK | unix.BRKINT | unix.PARMRK | unix.ISTRIP | unix.INLCR | unix.IGNCR | unix.ICRNL | unix.IXON
	t.Oflag &^= unix.OPOST
	t.Lflag &^= unix.ECHO | unix.ECHONL | unix.ICANON | unix.ISIG | unix.IEXTEN
	t.Cflag &^= unix.CSIZE | unix.PARENB
	t.Cflag |= unix.CS8
	t.Cc[unix.VMIN] = 1
	t.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}

// GetWinsize returns the (cols, rows) pair reported by TIOCGWINSZ.
func GetWinsize(fd int) (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}

// SetWinsize applies cols/rows via TIOCSWINSZ. Pixel fields are left
// zero.
func SetWinsize(fd int, cols, rows int) error {
	ws := &unix.Winsize{Col: uint16(cols), Row: uint16(rows)}
	return unix.IoctlSetWinsize(fd, unix.TIOCSWINSZ, ws)
}

// Get snapshots fd's current termios attributes.
func Get(fd int) (*unix.Termios, error) {
	return unix.IoctlGetTermios(fd, unix.TCGETS)
}

// Set applies a previously captured termios snapshot to fd, applied
// immediately (TCSANOW).
func Set(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, unix.TCSETS, t)
}

// SetFlush applies a previously captured termios snapshot to fd after
// discarding unread input (TCSAFLUSH), so raw-mode bytes already queued
// don't leak into the caller's next read once canonical mode is
// restored. Used by Interact's termios restore, not by the generic
// Set.
func SetFlush(fd int, t *unix.Termios) error {
	return unix.IoctlSetTermios(fd, unix.TCSETSF, t)
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	_, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	return err == nil
}

// specialChar reads a single control-character slot (VEOF, VINTR, ...)
// from fd's current attributes.
func specialChar(fd int, idx int) (byte, error) {
	t, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return 0, err
	}
	return t.Cc[idx], nil
}

// VEOFIndex and VINTRIndex expose the control-character slot indices
// this platform's termios struct uses.
const (
	VEOFIndex  = unix.VEOF
	VINTRIndex = unix.VINTR
)
