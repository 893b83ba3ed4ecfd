package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case animationTickMsg:
		return m.handleAnimation(msg)
	case commandResultMsg:
		return m.handleCommandResult(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.input.Width = msg.Width - 8
	return m, nil
}

func (m Model) handleAnimation(msg animationTickMsg) (tea.Model, tea.Cmd) {
	if m.loading {
		m.animationFrame++
		return m, animationTimer()
	}
	return m, nil
}

func (m Model) handleCommandResult(msg commandResultMsg) (tea.Model, tea.Cmd) {
	if m.loading && len(m.messages) > 0 && m.messages[len(m.messages)-1] == loadingMarker {
		m.messages = m.messages[:len(m.messages)-1]
	}
	m.loading = false
	m.messages = append(m.messages, msg.lines...)
	m.messages = append(m.messages, "")
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "enter":
		input := strings.TrimSpace(m.input.Value())
		if input == "" || m.loading {
			return m, nil
		}
		m.input.SetValue("")

		if low := strings.ToLower(input); low == "quit" || low == "exit" {
			return m, tea.Quit
		}

		m.messages = append(m.messages, "> "+input)
		m.loading = true
		m.animationFrame = 0
		m.messages = append(m.messages, loadingMarker)

		return m, tea.Batch(runCommand(m.session, input), animationTimer())
	}

	if m.loading {
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}
