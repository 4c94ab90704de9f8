package styles

import "github.com/charmbracelet/lipgloss"

// Monokai Pro color palette
const (
	// Base colors
	Background = "#2D2A2E"
	Foreground = "#FCFCFA"

	// Accent colors
	Red     = "#FF6188" // Errors, danger
	Orange  = "#FC9867" // Warnings
	Yellow  = "#FFD866" // Highlights
	Green   = "#A9DC76" // Success
	Cyan    = "#78DCE8" // Info
	Blue    = "#AB9DF2" // Links
	Magenta = "#FF6188" // Titles, emphasis

	// UI colors
	Comment = "#727072" // Dim text, help
	Border  = "#5B595C" // Borders, separators
)

// Common styles
var (
	SuccessStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Green))
	ErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(Red))
	WarningStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color(Orange))
	DimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(Magenta))
	HighlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(Yellow)).Bold(true)
	HelpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color(Comment))

	// Outline styles
	NodeTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Foreground))

	NodeIDStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Comment))

	BranchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Border))

	KindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Cyan))

	// Diagnostic styles
	DiagPathStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(Blue))

	DiagMessageStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(Orange))
)
