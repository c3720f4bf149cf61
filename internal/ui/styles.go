// Package ui holds the terminal styling used by the interactive shell:
// a lipgloss style palette, the application banner, and small print
// helpers for status lines and prompts.
package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	// Brand color
	Primary = lipgloss.Color("#E23636") // Red - brand color

	// Status colors
	Success = lipgloss.Color("#00D26A") // Bright green
	Warning = lipgloss.Color("#FFB800") // Amber
	Error   = lipgloss.Color("#FF3838") // Red
	Info    = lipgloss.Color("#4D96FF") // Blue
	Accent  = lipgloss.Color("#00D4AA") // Cyan/Teal
	Muted   = lipgloss.Color("#6B7280") // Gray
)

// Pre-configured styles
var (
	// Banner style
	BannerStyle = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	// Version badge
	VersionStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Menu section headers
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Bold(true)

	// Category separators inside menus
	SectionStyle = lipgloss.NewStyle().
			Foreground(Warning)

	// State lines (active session, current target)
	StateActiveStyle = lipgloss.NewStyle().
				Foreground(Success).
				Bold(true)

	StateUnsetStyle = lipgloss.NewStyle().
			Foreground(Warning)

	// Highlighted menu entries (session/reporting features)
	FeatureStyle = lipgloss.NewStyle().
			Foreground(Accent)

	// Dangerous menu entries
	DangerStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Status line styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Success).
			Bold(true)

	WarnStyle = lipgloss.NewStyle().
			Foreground(Warning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Info)

	// Prompt style
	PromptStyle = lipgloss.NewStyle().
			Bold(true)

	// Command echo before execution
	CommandStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	// Helper reference: flag names and their descriptions
	FlagStyle = lipgloss.NewStyle().
			Foreground(Accent)

	MutedStyle = lipgloss.NewStyle().
			Foreground(Muted)
)
