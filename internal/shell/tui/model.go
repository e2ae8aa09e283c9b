// Package tui provides an optional pre-interact status dashboard for a
// spawned PTY session: pid, window size, echo state, uptime, and
// alive/exited status, refreshed once a second until the user starts
// interacting or quits.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptybridge/ptybridge/pkg/pty"
)

// Model is the TUI state for the pre-interact session dashboard.
type Model struct {
	process *pty.Process

	width    int
	ready    bool
	quitting bool
	// launch reports whether the user asked to start interacting
	// ("i") rather than quitting ("q"/ctrl+c/esc).
	launch bool

	spinner spinner.Model

	alive     bool
	cols      int
	rows      int
	echo      bool
	startTime time.Time
	errMsg    string
}

// New builds a dashboard model for process.
func New(process *pty.Process) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = statValueStyle

	return Model{
		process:   process,
		spinner:   s,
		startTime: time.Now(),
	}
}

// Init starts the spinner and the refresh tick.
//
//nolint:gocritic // hugeParam: Model must be value receiver to implement tea.Model interface
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tickCmd())
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Launched reports whether the user asked to start interacting.
func (m Model) Launched() bool { return m.launch }
