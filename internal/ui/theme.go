package ui

import "github.com/charmbracelet/lipgloss"

// Palette
var (
	ColorAccent = lipgloss.Color("#ef233c")
	ColorText   = lipgloss.Color("#edf2f4")
	ColorMuted  = lipgloss.Color("#8d99ae")

	ColorSuccess = lipgloss.Color("#2ecc71")
	ColorWarning = lipgloss.Color("#f39c12")
	ColorError   = ColorAccent
	ColorInfo    = lipgloss.Color("#3498db")
)

var (
	// TitleStyle is used for section headings and the prompt header
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	// MutedStyle is used for secondary text such as the old filename
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// HighlightStyle marks the proposed filename
	HighlightStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	// ErrorStyle renders inline validation errors
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Status markers
var (
	OKMarker    = lipgloss.NewStyle().Foreground(ColorSuccess).SetString("[OK]")
	InfoMarker  = lipgloss.NewStyle().Foreground(ColorInfo).SetString("[INFO]")
	WarnMarker  = lipgloss.NewStyle().Foreground(ColorWarning).SetString("[WARN]")
	FailMarker  = lipgloss.NewStyle().Foreground(ColorError).SetString("[FAIL]")
	DebugMarker = lipgloss.NewStyle().Foreground(ColorMuted).SetString("[DEBUG]")
)

// FormatStatusOK returns an [OK] marker with message
func FormatStatusOK(message string) string {
	return OKMarker.String() + " " + message
}

// FormatStatusInfo returns an [INFO] marker with message
func FormatStatusInfo(message string) string {
	return InfoMarker.String() + " " + message
}

// FormatStatusWarn returns a [WARN] marker with message
func FormatStatusWarn(message string) string {
	return WarnMarker.String() + " " + message
}

// FormatStatusFail returns a [FAIL] marker with message
func FormatStatusFail(message string) string {
	return FailMarker.String() + " " + message
}

// FormatStatusDebug returns a [DEBUG] marker with message
func FormatStatusDebug(message string) string {
	return DebugMarker.String() + " " + message
}

// FormatKeybinding formats a key hint for the prompt footer
func FormatKeybinding(key, description string) string {
	return TitleStyle.Render(key) + " " + MutedStyle.Render(description)
}
