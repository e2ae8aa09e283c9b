//go:build unix

package shell

import (
	"testing"
	"time"

	"go.bug.st/serial"

	"github.com/ptybridge/ptybridge/pkg/pty"
)

// TestSlaveBehavesAsSerialEndpoint proves the PTY slave path this
// package's sessions ultimately attach a child to behaves like a real
// serial endpoint to a non-PTY-aware consumer, the same property the
// teacher's TestPTYWithGoSerial exercised against its own OpenPTY
// helper. Only the master side and the serial-opened slave side touch
// the pair here — no child is spawned, so there is no second reader
// racing the serial library for the slave's input queue.
func TestSlaveBehavesAsSerialEndpoint(t *testing.T) {
	pair, err := pty.OpenRawPair()
	if err != nil {
		t.Fatalf("OpenRawPair: %v", err)
	}
	defer pair.Close()

	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(pair.SlavePath, mode)
	if err != nil {
		t.Fatalf("serial.Open(%s): %v", pair.SlavePath, err)
	}
	defer port.Close()

	if err := port.SetReadTimeout(500 * time.Millisecond); err != nil {
		t.Logf("warning: SetReadTimeout: %v", err)
	}

	testData := []byte("hello from master")
	if _, err := pair.Master.Write(testData); err != nil {
		t.Fatalf("write to master: %v", err)
	}

	buf := make([]byte, 128)
	n, err := port.Read(buf)
	if err != nil {
		t.Fatalf("serial read: %v", err)
	}
	if got := string(buf[:n]); got != string(testData) {
		t.Errorf("master->slave: expected %q, got %q", testData, got)
	}

	responseData := []byte("hello from slave")
	if _, err := port.Write(responseData); err != nil {
		t.Fatalf("write to serial port: %v", err)
	}

	pair.Master.SetReadDeadline(time.Now().Add(2 * time.Second))
	n, err = pair.Master.Read(buf)
	if err != nil {
		t.Fatalf("read from master: %v", err)
	}
	if got := string(buf[:n]); got != string(responseData) {
		t.Errorf("slave->master: expected %q, got %q", responseData, got)
	}
}
