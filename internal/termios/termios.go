// Package termios wraps the terminal-attribute operations a PTY session
// needs: echo get/set, raw mode, window size, and special-character
// lookup. Implementations differ per platform (termios_unix.go,
// termios_darwin.go) for the same reason the teacher repo split its raw
// mode into pty_unix.go/pty_darwin.go: Linux/BSD can apply the standard
// "make raw" transform, Darwin needs the equivalent bits spelled out by
// hand.
package termios

const (
	// DefaultCols and DefaultRows are the window size a freshly spawned
	// PTY starts with before any caller resizes it.
	DefaultCols = 80
	DefaultRows = 24

	// DefaultVEOF and DefaultVINTR are used when the calling process has
	// no controlling terminal to probe for its actual VEOF/VINTR bytes.
	DefaultVEOF  = 0x04
	DefaultVINTR = 0x03
)

// GetEcho, SetEcho, SetRaw, GetWinsize, SetWinsize, and IsTerminal are
// implemented per platform.

// Which identifies a special control character slot to probe for.
type Which int

const (
	VEOF Which = iota
	VINTR
)

// SpecialChar looks up the VEOF/VINTR byte the calling process's
// controlling terminal is actually configured with, probing stdin
// first and falling back to stdout. If neither descriptor is a
// terminal, it returns the POSIX default for that slot.
func SpecialChar(which Which) byte {
	idx := veofIndex(which)
	for _, fd := range [2]int{0, 1} {
		if b, err := specialChar(fd, idx); err == nil {
			return b
		}
	}
	switch which {
	case VINTR:
		return DefaultVINTR
	default:
		return DefaultVEOF
	}
}

func veofIndex(which Which) int {
	if which == VINTR {
		return VINTRIndex
	}
	return VEOFIndex
}
