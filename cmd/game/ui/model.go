package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type Model struct {
	session        *Session
	messages       []string
	input          textinput.Model
	width          int
	height         int
	loading        bool
	animationFrame int
}

type animationTickMsg struct{}

func NewModel(session *Session) Model {
	input := textinput.New()
	input.Placeholder = "What do you do?"
	input.Focus()
	input.CharLimit = 200

	messages := []string{
		fmt.Sprintf("Welcome, %s.", session.State.PlayerName),
		"Type 'look' to get your bearings, or 'help' for the full command list.",
		"",
	}

	return Model{
		session:  session,
		messages: messages,
		input:    input,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}
