package pty

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/ptybridge/ptybridge/internal/termios"
)

// defaultTerminateApproachDelay is the pause exit(force) takes between
// each escalation step before re-checking liveness.
const defaultTerminateApproachDelay = 100 * time.Millisecond

// Process is the public control surface over a PTY-backed child: pid,
// status, window size, echo, signal delivery, escalated termination,
// and the send/send_line/send_control/send_eof/send_intr family. It
// is returned by Spawn and is safe for concurrent observer use (Pid,
// Status, IsAlive, GetEcho, GetWindowSize); mutating calls (Send*,
// SetEcho, SetWindowSize, Kill, Exit, Interact) should be serialized
// by the caller, matching the single-owner model real pty libraries
// assume.
type Process struct {
	cmd       *exec.Cmd
	master    *master
	stream    *stream
	slavePath string
	veof      byte
	vintr     byte

	terminateApproachDelay time.Duration

	mu         sync.Mutex
	terminated chan struct{}
	status     Status
	waitErr    error
}

// reap blocks on the child's exit and caches the resulting status.
// exec.Cmd.Wait already performs the reaping waitpid internally;
// status()'s "non-blocking poll" contract is implemented on top of
// this cached result (see Status) rather than issuing a second,
// racing waitpid from this package. Because exec.Cmd never requests
// WUNTRACED, a stopped child is never observed as Stopped here — only
// StillAlive, Exited, and Signaled occur in practice.
func (p *Process) reap() {
	err := p.cmd.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case err == nil:
		p.status = Status{Kind: Exited, ExitCode: p.cmd.ProcessState.ExitCode()}
	default:
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok {
				p.status = statusFromWait(ws)
			} else {
				p.status = Status{Kind: Exited, ExitCode: exitErr.ExitCode()}
			}
		} else {
			p.waitErr = err
		}
	}
	close(p.terminated)
}

// Pid returns the child's process ID. It is stable for the handle's
// lifetime, including after the child has exited.
func (p *Process) Pid() int { return p.cmd.Process.Pid }

// SlavePath returns the path of the PTY slave device the child is
// attached to (e.g. "/dev/pts/4").
func (p *Process) SlavePath() string { return p.slavePath }

// GetWindowSize reports the PTY's current (cols, rows).
func (p *Process) GetWindowSize() (cols, rows int, err error) {
	return termios.GetWinsize(int(p.master.Fd()))
}

// SetWindowSize applies a new (cols, rows) to the PTY.
func (p *Process) SetWindowSize(cols, rows int) error {
	return termios.SetWinsize(int(p.master.Fd()), cols, rows)
}

// GetEcho reports whether the PTY currently echoes input.
func (p *Process) GetEcho() (bool, error) {
	return termios.GetEcho(int(p.master.Fd()))
}

// SetEcho enables or disables PTY echo.
func (p *Process) SetEcho(on bool) error {
	return termios.SetEcho(int(p.master.Fd()), on)
}

// WaitEcho polls GetEcho every 100ms until it matches on or timeout
// elapses (timeout <= 0 means wait indefinitely). It returns whether
// the state was matched before the deadline.
func (p *Process) WaitEcho(on bool, timeout time.Duration) (bool, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		got, err := p.GetEcho()
		if err != nil {
			return false, err
		}
		if got == on {
			return true, nil
		}
		if timeout > 0 && time.Now().After(deadline) {
			return false, nil
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// IsATTY reports whether the master descriptor is a terminal. It is
// true for the lifetime of the handle.
func (p *Process) IsATTY() bool {
	return termios.IsTerminal(int(p.master.Fd()))
}

// Status returns the child's current state without blocking: if the
// reap goroutine has already recorded an exit, that cached result is
// returned; otherwise StillAlive.
func (p *Process) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	select {
	case <-p.terminated:
		return p.status
	default:
		return Status{Kind: StillAlive}
	}
}

// Wait blocks until the child exits and returns its final status.
// Calling Wait after the child has already been reaped returns the
// same cached status rather than erroring.
func (p *Process) Wait() (Status, error) {
	<-p.terminated
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, p.waitErr
}

// IsAlive reports whether the child is StillAlive or Stopped. ECHILD/
// ESRCH class errors from a concurrently reaped child are treated as
// "not alive" rather than propagated.
func (p *Process) IsAlive() bool {
	p.mu.Lock()
	reapErr := p.waitErr
	p.mu.Unlock()
	if reapErr != nil {
		return false
	}
	return p.Status().Alive()
}

// Signal delivers sig to the child without blocking.
func (p *Process) Signal(sig syscall.Signal) error {
	if !p.IsAlive() {
		return nil
	}
	return syscall.Kill(p.Pid(), sig)
}

// Kill is an alias for Signal(syscall.SIGKILL).
func (p *Process) Kill() error {
	return p.Signal(syscall.SIGKILL)
}

// SetTerminateApproachDelay overrides the pause Exit takes between
// each escalation signal and its liveness recheck. The zero value
// restores the 100ms default.
func (p *Process) SetTerminateApproachDelay(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.terminateApproachDelay = d
}

func (p *Process) approachDelay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.terminateApproachDelay <= 0 {
		return defaultTerminateApproachDelay
	}
	return p.terminateApproachDelay
}

// Exit escalates through SIGHUP, SIGCONT, SIGINT, SIGTERM — pausing
// the terminate-approach delay and rechecking liveness after each —
// and, if force is true and the child is still alive, finishes with
// SIGKILL. It reports whether the child was dead by the time Exit
// returned.
func (p *Process) Exit(force bool) bool {
	if !p.IsAlive() {
		return true
	}

	for _, sig := range []syscall.Signal{syscall.SIGHUP, syscall.SIGCONT, syscall.SIGINT, syscall.SIGTERM} {
		_ = p.Signal(sig)
		time.Sleep(p.approachDelay())
		if !p.IsAlive() {
			return true
		}
	}

	if !force {
		return false
	}

	_ = p.Signal(syscall.SIGKILL)
	time.Sleep(p.approachDelay())
	return !p.IsAlive()
}

// Send writes b through the PTY stream.
func (p *Process) Send(b []byte) (int, error) {
	return p.stream.Write(b)
}

// SendLine writes b followed by a newline through the PTY stream.
func (p *Process) SendLine(b []byte) (int, error) {
	return p.Send(append(append([]byte{}, b...), '\n'))
}

// SendControl encodes a control-character mnemonic (e.g. "^C", "C",
// "ETX") to a single byte and writes it. Unknown mnemonics return
// ErrBadControlCharacter.
func (p *Process) SendControl(code any) (int, error) {
	b, err := EncodeControl(code)
	if err != nil {
		return 0, err
	}
	return p.Send([]byte{b})
}

// SendEOF writes the cached VEOF byte.
func (p *Process) SendEOF() (int, error) {
	return p.Send([]byte{p.veof})
}

// SendIntr writes the cached VINTR byte.
func (p *Process) SendIntr() (int, error) {
	return p.Send([]byte{p.vintr})
}

// SendContext is Send with cancellation: it returns ctx.Err() if ctx
// is done before the write completes. The write itself is not
// interrupted and may still complete after SendContext has returned.
// Supplements the core send contract for callers that want to bound
// how long they wait on a blocking stream write.
func (p *Process) SendContext(ctx context.Context, b []byte) (int, error) {
	type result struct {
		n   int
		err error
	}
	done := make(chan result, 1)
	go func() {
		n, err := p.Send(b)
		done <- result{n, err}
	}()
	select {
	case <-ctx.Done():
		return 0, ctx.Err()
	case r := <-done:
		return r.n, r.err
	}
}

// Read reads raw bytes from the PTY stream.
func (p *Process) Read(b []byte) (int, error) { return p.stream.Read(b) }

// Write writes raw bytes to the PTY stream.
func (p *Process) Write(b []byte) (int, error) { return p.stream.Write(b) }

// Handle returns an independent duplicate of the master descriptor as
// an *os.File. The caller owns closing it; closing it has no effect
// on the Process's own stream or master descriptor.
func (p *Process) Handle() (*os.File, error) {
	return p.master.fileHandle()
}

// Close releases the Process's own descriptors: the duplicated master
// stream and the master device itself. It does not touch descriptors
// obtained via Handle. Unlike the GC finalizer Spawn registers, Close
// does not force-terminate a still-alive child; callers that want that
// must call Exit first. Close also unregisters that finalizer.
func (p *Process) Close() error {
	runtime.SetFinalizer(p, nil)
	streamErr := p.stream.Close()
	masterErr := p.master.Close()
	if streamErr != nil {
		return streamErr
	}
	return masterErr
}

// finalize is the GC finalizer registered by Spawn, invoked if a
// Process is garbage collected without Close or Exit ever being
// called. A Go finalizer runs on an arbitrary goroutine with no
// caller to propagate an error to; panicking there would crash the
// whole program, which is a worse outcome than the leak it would be
// guarding against. So finalize logs instead of panicking on a failed
// forced exit.
func (p *Process) finalize() {
	if p.IsAlive() {
		if !p.Exit(true) {
			fmt.Fprintf(os.Stderr, "pty: finalizer: process %d did not terminate on forced exit\n", p.Pid())
		}
	}
	_ = p.Close()
}
