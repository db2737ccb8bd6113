package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	cursorStyle  = lipgloss.NewStyle().Reverse(true)
	winStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	lastStyle    = lipgloss.NewStyle().Underline(true)
)

func (m model) View() string {
	switch m.scene {
	case sceneExit:
		return "Bye.\n"
	case scenePlayerVsPlayer, scenePlayerVsAI:
		return m.matchView()
	default:
		return m.menuView()
	}
}

func (m model) menuView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("GOBANG"))
	b.WriteString("\n\n")
	for _, binding := range []key.Binding{menuKeys.PlayerVsPlayer, menuKeys.PlayerVsAI, menuKeys.Exit} {
		fmt.Fprintf(&b, "  %s) %s\n", binding.Help().Key, binding.Help().Desc)
	}
	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	return b.String()
}

func (m model) matchView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.scene.String()))
	b.WriteString("\n\n")
	b.WriteString(renderBoard(m.status, m.boardSize(), m.cursorX, m.cursorY))
	b.WriteString("\n")
	b.WriteString(m.turnLine())
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(messageStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(hintStyle.Render(matchKeys.helpLine()))
	b.WriteString("\n")
	return b.String()
}

func (m model) turnLine() string {
	if !m.hasStatus {
		return "Connecting..."
	}
	if m.status.Finished() {
		return resultText(m.status)
	}
	if m.status.Status != "running" {
		return "Waiting for the game to start"
	}
	line := fmt.Sprintf("%s to move  (cursor %d,%d)", sideName(m.status.NextPlayer), m.cursorX, m.cursorY)
	if m.status.AiThinking {
		line += "  AI thinking..."
	}
	return line
}

func renderBoard(status statusResponse, size, cursorX, cursorY int) string {
	winning := make(map[moveDTO]bool, len(status.WinningLine))
	for _, move := range status.WinningLine {
		winning[move] = true
	}
	last := moveDTO{X: -1, Y: -1}
	if n := len(status.History); n > 0 {
		last = moveDTO{X: status.History[n-1].X, Y: status.History[n-1].Y}
	}

	var b strings.Builder
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			glyph := stoneGlyph(status.CellAt(x, y))
			pos := moveDTO{X: x, Y: y}
			switch {
			case x == cursorX && y == cursorY:
				glyph = cursorStyle.Render(glyph)
			case winning[pos]:
				glyph = winStyle.Render(glyph)
			case pos == last:
				glyph = lastStyle.Render(glyph)
			}
			b.WriteString(glyph)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func stoneGlyph(value int) string {
	switch value {
	case 1:
		return "*"
	case 2:
		return "o"
	default:
		return "."
	}
}

func sideName(player int) string {
	if player == 2 {
		return "White (o)"
	}
	return "Black (*)"
}
