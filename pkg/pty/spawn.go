package pty

import (
	"os"
	"os/exec"
	"runtime"
	"syscall"

	"github.com/ptybridge/ptybridge/internal/termios"
)

// Command describes the child process to spawn under a fresh PTY.
type Command struct {
	// Path is the executable to run. It is resolved via exec.LookPath
	// the same way os/exec.Command resolves a bare name.
	Path string
	// Args are the argv entries, Args[0] included. If empty, Path is
	// used as Args[0].
	Args []string
	// Env overrides the spawned process's environment. A nil Env
	// inherits the calling process's environment, matching exec.Cmd.
	Env []string
	// Dir sets the child's working directory. Empty means inherit the
	// caller's.
	Dir string
}

// Spawn starts cmd attached to a freshly allocated PTY and returns a
// Process handle for driving it. The child's controlling terminal is
// the new slave device: Spawn performs the open-master/grant/unlock/
// open-slave sequence itself and hands the slave to exec.Cmd with
// Setsid+Setctty so the OS performs the fork/exec and controlling-tty
// acquisition as one atomic unit, rather than this package driving a
// manual fork in a goroutine-scheduled runtime (see execerr.go).
func Spawn(cmd Command) (*Process, error) {
	veof := termios.SpecialChar(termios.VEOF)
	vintr := termios.SpecialChar(termios.VINTR)

	m, err := openMaster()
	if err != nil {
		return nil, err
	}

	if err := m.grantSlave(); err != nil {
		m.Close()
		return nil, err
	}
	if err := m.unlockSlave(); err != nil {
		m.Close()
		return nil, err
	}

	slavePath, err := m.slaveName()
	if err != nil {
		m.Close()
		return nil, err
	}

	slave, err := os.OpenFile(slavePath, os.O_RDWR, 0)
	if err != nil {
		m.Close()
		return nil, err
	}

	// Window size and echo belong to the tty device, not to a
	// particular fd number, so initializing them on the slave from the
	// parent before Start is equivalent to doing it on fd 0 after the
	// child's post-fork dup2 — and lets Spawn report setup errors
	// directly instead of smuggling them through the exec-error
	// channel.
	if err := termios.SetWinsize(int(slave.Fd()), termios.DefaultCols, termios.DefaultRows); err != nil {
		slave.Close()
		m.Close()
		return nil, err
	}
	if err := termios.SetEcho(int(slave.Fd()), false); err != nil {
		slave.Close()
		m.Close()
		return nil, err
	}

	args := cmd.Args
	if len(args) == 0 {
		args = []string{cmd.Path}
	}

	execCmd := exec.Command(cmd.Path, args[1:]...)
	execCmd.Args = args
	execCmd.Env = cmd.Env
	execCmd.Dir = cmd.Dir
	execCmd.Stdin = slave
	execCmd.Stdout = slave
	execCmd.Stderr = slave
	execCmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
		Ctty:    0,
	}

	if err := execCmd.Start(); err != nil {
		slave.Close()
		m.Close()
		return nil, newSpawnError(cmd.Path, err)
	}

	// The slave fd is now only needed by the child; the parent's copy
	// would otherwise hold the PTY open past the child's exit.
	slave.Close()

	masterFile, err := m.fileHandle()
	if err != nil {
		_ = execCmd.Process.Kill()
		m.Close()
		return nil, err
	}

	p := &Process{
		cmd:        execCmd,
		master:     m,
		stream:     newStream(masterFile),
		slavePath:  slavePath,
		veof:       veof,
		vintr:      vintr,
		terminated: make(chan struct{}),
	}
	go p.reap()

	runtime.SetFinalizer(p, (*Process).finalize)

	return p, nil
}
