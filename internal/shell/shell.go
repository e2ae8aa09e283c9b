// Package shell wires pkg/pty into a runnable driver: it turns a
// config.Config into a spawned, logged, optionally relay-logged PTY
// session that a CLI command can hand off to Interact.
package shell

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ptybridge/ptybridge/internal/config"
	"github.com/ptybridge/ptybridge/internal/logging"
	"github.com/ptybridge/ptybridge/internal/shell/relaylog"
	"github.com/ptybridge/ptybridge/pkg/pty"
)

// Session owns a spawned PTY-backed process plus the ambient
// collaborators (logger, optional relay-log publisher) that observe
// its lifecycle.
type Session struct {
	process   *pty.Process
	logger    *zap.Logger
	publisher *relaylog.Publisher
}

// New spawns cfg.Shell.Command under a fresh PTY and returns a Session
// ready for Interact.
func New(cfg *config.Config) (*Session, error) {
	logger := logging.With(zap.String("component", "shell"))

	args := append([]string{cfg.Shell.Command}, cfg.Shell.Args...)
	env := os.Environ()
	for k, v := range cfg.Shell.Env {
		env = append(env, k+"="+v)
	}

	process, err := pty.Spawn(pty.Command{
		Path: cfg.Shell.Command,
		Args: args,
		Env:  env,
		Dir:  cfg.Shell.Dir,
	})
	if err != nil {
		return nil, fmt.Errorf("shell: spawn %q: %w", cfg.Shell.Command, err)
	}

	logger.Info("spawned session",
		zap.Int("pid", process.Pid()),
		zap.String("slave", process.SlavePath()),
		zap.String("command", strings.Join(args, " ")))

	var publisher *relaylog.Publisher
	if cfg.RelayLog.Enabled {
		publisher, err = relaylog.Connect(relaylog.Config{
			Broker:   cfg.RelayLog.Broker,
			Topic:    cfg.RelayLog.Topic,
			ClientID: cfg.RelayLog.ClientID,
		})
		if err != nil {
			logger.Warn("relay log publisher unavailable, continuing without it", zap.Error(err))
			publisher = nil
		} else {
			publisher.PublishStarted(process.Pid(), process.SlavePath())
		}
	}

	return &Session{process: process, logger: logger, publisher: publisher}, nil
}

// Process exposes the underlying PTY handle for callers that need
// direct control (e.g. the TUI status view).
func (s *Session) Process() *pty.Process { return s.process }

// Interact runs the interact bridge to completion, logging and
// optionally relay-logging the exit status.
func (s *Session) Interact() (pty.Status, error) {
	status, err := s.process.Interact()
	if err != nil {
		s.logger.Error("interact ended with error", zap.Error(err))
	}
	s.logger.Info("session ended", zap.String("status", status.String()))
	if s.publisher != nil {
		s.publisher.PublishExited(s.process.Pid(), status)
	}
	return status, err
}

// Shutdown escalates termination via Exit(force), for use from a
// signal handler rather than the normal interact exit path.
func (s *Session) Shutdown(force bool) bool {
	s.logger.Info("shutting down session", zap.Int("pid", s.process.Pid()), zap.Bool("force", force))
	dead := s.process.Exit(force)
	if s.publisher != nil {
		s.publisher.PublishExited(s.process.Pid(), s.process.Status())
	}
	return dead
}

// Close releases the session's own descriptors (see pty.Process.Close)
// and disconnects the relay-log publisher, if any.
func (s *Session) Close() error {
	if s.publisher != nil {
		_ = s.publisher.Close()
	}
	return s.process.Close()
}
