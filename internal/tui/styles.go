package tui

import "github.com/charmbracelet/lipgloss"

// Color palette - keeping it minimal and accessible.
var (
	ColorPrimary   = lipgloss.Color("39")  // Blue
	ColorSecondary = lipgloss.Color("245") // Gray
	ColorSuccess   = lipgloss.Color("34")  // Green
	ColorWarning   = lipgloss.Color("214") // Orange
	ColorError     = lipgloss.Color("196") // Red
	ColorMuted     = lipgloss.Color("240") // Dark gray
	ColorAccent    = lipgloss.Color("176") // Pink
)

// Styles for summaries and reports.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	CountStyle = lipgloss.NewStyle().
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// SQL token styles used by Highlighter.
var (
	SQLKeywordStyle  = lipgloss.NewStyle().Foreground(ColorPrimary).Bold(true)
	SQLTypeStyle     = lipgloss.NewStyle().Foreground(ColorAccent)
	SQLStringStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	SQLNumberStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
	SQLCommentStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	SQLOperatorStyle = lipgloss.NewStyle().Foreground(ColorSecondary)
)

// Symbols for visual feedback.
const (
	SymbolCheck  = "✓"
	SymbolCross  = "✗"
	SymbolWarn   = "!"
	SymbolBullet = "•"
)
