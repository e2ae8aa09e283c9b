//go:build unix

package termios

import (
	"os"
	"testing"

	"golang.org/x/sys/unix"
)

func TestSetGetEchoRoundTrip(t *testing.T) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open /dev/ptmx: %v", err)
	}
	defer master.Close()
	fd := int(master.Fd())

	if err := SetEcho(fd, false); err != nil {
		t.Fatalf("SetEcho(false): %v", err)
	}
	on, err := GetEcho(fd)
	if err != nil {
		t.Fatalf("GetEcho: %v", err)
	}
	if on {
		t.Error("expected echo off after SetEcho(false)")
	}

	if err := SetEcho(fd, true); err != nil {
		t.Fatalf("SetEcho(true): %v", err)
	}
	on, err = GetEcho(fd)
	if err != nil {
		t.Fatalf("GetEcho: %v", err)
	}
	if !on {
		t.Error("expected echo on after SetEcho(true)")
	}
}

func TestSetRawDisablesCanonAndEcho(t *testing.T) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open /dev/ptmx: %v", err)
	}
	defer master.Close()
	fd := int(master.Fd())

	if err := SetRaw(fd); err != nil {
		t.Fatalf("SetRaw: %v", err)
	}
	on, err := GetEcho(fd)
	if err != nil {
		t.Fatalf("GetEcho: %v", err)
	}
	if on {
		t.Error("expected echo off after SetRaw")
	}
	attrs, err := Get(fd)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if attrs.Lflag&unix.ICANON != 0 {
		t.Error("expected ICANON off after SetRaw")
	}
}

func TestWinsizeRoundTrip(t *testing.T) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open /dev/ptmx: %v", err)
	}
	defer master.Close()
	fd := int(master.Fd())

	if err := SetWinsize(fd, 100, 40); err != nil {
		t.Fatalf("SetWinsize: %v", err)
	}
	cols, rows, err := GetWinsize(fd)
	if err != nil {
		t.Fatalf("GetWinsize: %v", err)
	}
	if cols != 100 || rows != 40 {
		t.Errorf("expected 100x40, got %dx%d", cols, rows)
	}
}

func TestIsTerminal(t *testing.T) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open /dev/ptmx: %v", err)
	}
	defer master.Close()

	if !IsTerminal(int(master.Fd())) {
		t.Error("expected /dev/ptmx master to report as a terminal")
	}

	f, err := os.CreateTemp("", "termios-not-a-tty")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if IsTerminal(int(f.Fd())) {
		t.Error("expected a plain file to not report as a terminal")
	}
}

func TestGetSetFlushRoundTrip(t *testing.T) {
	master, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		t.Fatalf("open /dev/ptmx: %v", err)
	}
	defer master.Close()
	fd := int(master.Fd())

	saved, err := Get(fd)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	if err := SetRaw(fd); err != nil {
		t.Fatalf("SetRaw: %v", err)
	}

	if err := SetFlush(fd, saved); err != nil {
		t.Fatalf("SetFlush: %v", err)
	}
	on, err := GetEcho(fd)
	if err != nil {
		t.Fatalf("GetEcho: %v", err)
	}
	if !on {
		t.Error("expected echo restored after SetFlush")
	}
}

func TestSpecialCharDefaults(t *testing.T) {
	// Neither stdin nor stdout is guaranteed to be a tty in a test
	// runner; SpecialChar must fall back to the documented defaults
	// rather than erroring. When one of them is a tty, the probed value
	// is only logged.
	noTTY := !IsTerminal(0) && !IsTerminal(1)
	if b := SpecialChar(VEOF); b != DefaultVEOF {
		if noTTY {
			t.Errorf("SpecialChar(VEOF) = 0x%02x, expected default 0x%02x with no terminal to probe", b, DefaultVEOF)
		} else {
			t.Logf("SpecialChar(VEOF) = 0x%02x (probing a real terminal in this environment)", b)
		}
	}
	if b := SpecialChar(VINTR); b != DefaultVINTR {
		if noTTY {
			t.Errorf("SpecialChar(VINTR) = 0x%02x, expected default 0x%02x with no terminal to probe", b, DefaultVINTR)
		} else {
			t.Logf("SpecialChar(VINTR) = 0x%02x (probing a real terminal in this environment)", b)
		}
	}
}
