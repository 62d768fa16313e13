package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const progressWidth = 24

// styles groups the lipgloss styles used across the section and summary
// views. Kept deliberately small; this is terminal formatting, not a
// design system.
type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	muted   lipgloss.Style
	label   lipgloss.Style
	errText lipgloss.Style
	success lipgloss.Style
	filled  lipgloss.Style
	empty   lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		section: lipgloss.NewStyle().Bold(true).Underline(true),
		muted:   lipgloss.NewStyle().Faint(true),
		label:   lipgloss.NewStyle(),
		errText: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		filled:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		empty:   lipgloss.NewStyle().Faint(true),
	}
}

// progressBar renders a fixed-width bar filled proportionally to
// position/total. Position is 1-based; a two-section form on its first
// section shows half a bar.
func (s styles) progressBar(position, total int) string {
	if total <= 0 {
		total = 1
	}
	filled := progressWidth * position / total
	if filled > progressWidth {
		filled = progressWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := s.filled.Render(strings.Repeat("█", filled)) +
		s.empty.Render(strings.Repeat("░", progressWidth-filled))
	return fmt.Sprintf("%s %d/%d", bar, position, total)
}
