package pty

import (
	"context"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/ptybridge/ptybridge/internal/termios"
)

// escapeByte is Ctrl-], the key that ends Interact without forwarding
// it (or anything after it in the same read) to the child.
const escapeByte = 0x1D

// spliceBufSize is the scratch buffer size for both directions of the
// splice loop.
const spliceBufSize = 512

// spliceBackoff is how long Interact sleeps when neither direction
// found data in an iteration, to avoid a busy spin.
const spliceBackoff = 10 * time.Millisecond

// Interact splices the real terminal (stdin for input, stdout for
// output) to the child until the child exits or the user types the
// escape byte (Ctrl-]). It restores whatever echo/termios state it
// changed on every exit path, matching the interact bridge's "restore
// on success or failure" contract.
func (p *Process) Interact() (Status, error) {
	return p.interact(context.Background())
}

func (p *Process) interact(ctx context.Context) (Status, error) {
	if err := flushPending(p.stream); err != nil {
		return Status{}, err
	}

	priorEcho, err := p.GetEcho()
	if err != nil {
		return Status{}, err
	}
	if err := p.SetEcho(true); err != nil {
		return Status{}, err
	}
	defer func() { _ = p.SetEcho(priorEcho) }()

	stdinFd := int(os.Stdin.Fd())
	isTTY := termios.IsTerminal(stdinFd)

	var priorTermios *unix.Termios
	if isTTY {
		t, err := termios.Get(stdinFd)
		if err == nil {
			priorTermios = t
			_ = termios.SetRaw(stdinFd)
		}
	}
	defer func() {
		if priorTermios != nil {
			// TCSAFLUSH/TIOCSETAF, not the generic Set's TCSANOW: discard
			// any raw-mode input already queued on stdin rather than
			// delivering it to the caller's next read once canonical mode
			// is back.
			_ = termios.SetFlush(stdinFd, priorTermios)
		}
	}()

	dupStdinFd, err := unix.Dup(stdinFd)
	if err != nil {
		return Status{}, err
	}
	userIn := newStream(os.NewFile(uintptr(dupStdinFd), "interact-stdin"))
	defer userIn.Close()

	childBuf := make([]byte, spliceBufSize)
	userBuf := make([]byte, spliceBufSize)

	for {
		select {
		case <-ctx.Done():
			return p.Status(), ctx.Err()
		default:
		}
		if st := p.Status(); st.Kind != StillAlive {
			return st, nil
		}

		foundAny := false

		n, ok, err := p.stream.tryRead(childBuf)
		if err != nil {
			return p.Status(), err
		}
		if ok && n > 0 {
			foundAny = true
			if _, werr := os.Stdout.Write(childBuf[:n]); werr != nil {
				return p.Status(), werr
			}
		}

		n, ok, err = userIn.tryRead(userBuf)
		if err != nil {
			return p.Status(), err
		}
		if ok && n > 0 {
			foundAny = true
			chunk := userBuf[:n]
			if idx := indexByte(chunk, escapeByte); idx >= 0 {
				if idx > 0 {
					if _, werr := p.stream.Write(chunk[:idx]); werr != nil {
						return p.Status(), werr
					}
				}
				return p.Status(), nil
			}
			if _, werr := p.stream.Write(chunk); werr != nil {
				return p.Status(), werr
			}
		}

		if !foundAny {
			time.Sleep(spliceBackoff)
		}
	}
}

// InteractContext is Interact with external cancellation: ctx.Done()
// ends the bridge the same way the escape byte does, restoring state
// on the way out.
func (p *Process) InteractContext(ctx context.Context) (Status, error) {
	done := make(chan struct{})
	resultCh := make(chan struct {
		status Status
		err    error
	}, 1)

	go func() {
		st, err := p.interact(ctx)
		resultCh <- struct {
			status Status
			err    error
		}{st, err}
		close(done)
	}()

	select {
	case <-ctx.Done():
		<-done
		return p.Status(), ctx.Err()
	case r := <-resultCh:
		return r.status, r.err
	}
}

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// flushPending has nothing to flush for a direct os.File-backed
// stream (no userspace buffering layer sits in front of it), but
// keeping the call as a distinct step documents the interact
// protocol's "flush any buffered output" first step for an adapter
// that does buffer.
func flushPending(s *stream) error {
	return nil
}
