package tui

import (
	"fmt"
	"strings"
	"time"
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		if m.launch {
			return "Attaching...\n"
		}
		return "Goodbye!\n"
	}

	if !m.ready {
		return fmt.Sprintf("%s Initializing...\n", m.spinner.View())
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("ptybridge session"))
	b.WriteString("\n")

	status := AliveIndicator(m.alive)
	pid := ""
	if m.process != nil {
		pid = statLabelStyle.Render(" | pid: ") + statValueStyle.Render(fmt.Sprintf("%d", m.process.Pid()))
	}
	b.WriteString(status + pid)
	b.WriteString("\n")

	size := statLabelStyle.Render("window: ") + statValueStyle.Render(fmt.Sprintf("%dx%d", m.cols, m.rows))
	echo := statLabelStyle.Render(" | echo: ") + statValueStyle.Render(fmt.Sprintf("%v", m.echo))
	uptime := statLabelStyle.Render(" | uptime: ") + statValueStyle.Render(time.Since(m.startTime).Round(time.Second).String())
	b.WriteString(size + echo + uptime)
	b.WriteString("\n")

	box := boxStyle.Width(maxInt(m.width-4, 20)).Render("press i to attach, q to quit without attaching")
	b.WriteString(box)
	b.WriteString("\n")

	if m.errMsg != "" {
		b.WriteString(helpStyle.Render("error: " + m.errMsg))
	}

	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
