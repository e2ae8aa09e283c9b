package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptybridge/ptybridge/pkg/pty"
)

// Run shows the status dashboard for process until the user quits or
// asks to attach, and reports which.
func Run(process *pty.Process) (attach bool, err error) {
	model := New(process)
	program := tea.NewProgram(model)

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("tui: run: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return m.Launched(), nil
}
