package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const loadingMarker = "LOADING_ANIMATION"

func (m Model) View() string {
	statusHeight := 1
	inputHeight := 3
	chatHeight := m.height - statusHeight - inputHeight

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color("6")).
		Padding(0, 1).
		Width(m.width)

	messageStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("7"))

	userStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("12")).
		Bold(true)

	loadingStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("6"))

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1).
		Width(m.width - 4)

	chatPanel := lipgloss.NewStyle().
		Width(m.width).
		Height(chatHeight).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(1)

	var chatContent strings.Builder

	visibleMessages := m.messages
	maxMessages := chatHeight - 2
	if maxMessages < 1 {
		maxMessages = 1
	}
	if len(visibleMessages) > maxMessages {
		visibleMessages = visibleMessages[len(visibleMessages)-maxMessages:]
	}

	for i := len(visibleMessages); i < maxMessages; i++ {
		chatContent.WriteString("\n")
	}

	contentWidth := m.width - 4

	for _, message := range visibleMessages {
		switch {
		case message == "":
			chatContent.WriteString("\n")
		case strings.HasPrefix(message, "> "):
			chatContent.WriteString(userStyle.Render(wrapAndIndent(message, contentWidth, " ")) + "\n")
		case message == loadingMarker:
			spinner := getLoadingAnimation(m.animationFrame)
			chatContent.WriteString(loadingStyle.Render(wrapAndIndent(spinner, contentWidth, " ")) + "\n")
		default:
			chatContent.WriteString(messageStyle.Render(wrapAndIndent(message, contentWidth, " ")) + "\n")
		}
	}

	status := statusStyle.Render(m.statusLine())
	chat := chatPanel.Render(chatContent.String())
	input := inputStyle.Render(m.input.View())

	return status + "\n" + chat + "\n" + input
}

func (m Model) statusLine() string {
	state := m.session.State
	return fmt.Sprintf("%s  |  %s  |  HP %d/%d  |  Gold %d  |  Level %d",
		state.PlayerName,
		state.Location().Name,
		state.Stats.Health, state.Stats.MaxHealth,
		state.Gold,
		state.Level)
}

func wrapAndIndent(text string, width int, indent string) string {
	if len(text) <= width {
		return indent + text
	}

	var result strings.Builder
	words := strings.Fields(text)
	if len(words) == 0 {
		return indent + text
	}

	currentLine := indent + words[0]

	for _, word := range words[1:] {
		if len(currentLine)+1+len(word) <= width {
			currentLine += " " + word
		} else {
			result.WriteString(currentLine + "\n")
			currentLine = indent + word
		}
	}

	result.WriteString(currentLine)
	return result.String()
}

func getLoadingAnimation(frame int) string {
	arc := []string{"◜", "◠", "◝", "◞", "◡", "◟"}
	return arc[frame%len(arc)]
}
