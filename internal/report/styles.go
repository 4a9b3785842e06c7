package report

import (
	"github.com/charmbracelet/lipgloss"
)

// --- Color Palette ---
var (
	ColorPrimary = lipgloss.Color("#7D56F4") // Indigo/Purple
	ColorFaster  = lipgloss.Color("#04B575") // Green
	ColorSlower  = lipgloss.Color("#FF5F87") // Pink/Red
	ColorNeutral = lipgloss.Color("#FFAF00") // Gold
	ColorText    = lipgloss.Color("#FAFAFA") // White-ish
	ColorSubtle  = lipgloss.Color("#767676") // Gray
	ColorBorder  = lipgloss.Color("#3C3C3C") // Dark Gray border
)

var (
	// Outer platform panel
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(1, 2)

	// Per-workload card
	Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1).
		Margin(0, 1)

	Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	Header = lipgloss.NewStyle().
		Foreground(ColorText).
		Bold(true).
		Align(lipgloss.Center)

	Cell = lipgloss.NewStyle().
		Foreground(ColorText).
		Align(lipgloss.Center).
		Padding(0, 1)

	Subtle = lipgloss.NewStyle().Foreground(ColorSubtle)

	Faster  = lipgloss.NewStyle().Foreground(ColorFaster).Bold(true)
	Slower  = lipgloss.NewStyle().Foreground(ColorSlower)
	Neutral = lipgloss.NewStyle().Foreground(ColorNeutral)
)
