package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/racetrack/internal/config"
)

var rulesTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

// rulesText explains how to play under rc.
func rulesText(rc config.RaceConfig) []string {
	crash := fmt.Sprintf("   Penalty: %s respawn time.", formatSeconds(rc.Rules.RespawnSeconds))
	if !rc.Rules.Respawn {
		crash = "   Penalty: your car is out of the race."
	}

	lines := []string{
		"1. MOVEMENT: You control the ACCELERATION.",
		"   Your car has inertia. If you speed up,",
		"   you will keep moving until you brake.",
		"",
		"2. CONTROLS:",
		"   [Arrows] or [NumPad] to change velocity.",
		"   [Space] or [5] to maintain speed.",
		"",
		"3. CRASHING:",
		"   Don't hit walls or map borders!",
		crash,
		"",
		"4. WINNING:",
		"   First player to reach the YELLOW zone wins.",
	}
	if rc.Rules.MaxTurns > 0 {
		lines = append(lines, fmt.Sprintf("   The race ends after %d turns.", rc.Rules.MaxTurns))
	}
	lines = append(lines,
		"",
		"5. PVP:",
		"   Don't hit other cars or you both crash!",
	)
	return lines
}

func formatSeconds(s float64) string {
	if s == 1 {
		return "1 second"
	}
	return fmt.Sprintf("%g seconds", s)
}

// renderRules draws the rules screen, block-centred.
func (m MenuModel) renderRules() string {
	lines := rulesText(m.race)

	widest := 0
	for _, l := range lines {
		widest = max(widest, lipgloss.Width(l))
	}
	pad := ""
	if m.width > widest {
		pad = strings.Repeat(" ", (m.width-widest)/2)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(rulesTitleStyle.Render("--- HOW TO PLAY ---"), m.width))
	b.WriteString("\n\n")
	for _, l := range lines {
		if l != "" {
			b.WriteString(pad + l)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText("Esc/Enter: Back  |  Q: Quit", m.width))
	b.WriteString("\n")
	return b.String()
}
