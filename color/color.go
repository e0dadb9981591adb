// Package color provides the ANSI and hex colors used by the console output.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// Standard ANSI palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")
)

// High-intensity ANSI palette.
var (
	HiRed    = New("9")
	HiGreen  = New("10")
	HiYellow = New("11")
	HiPurple = New("13")
	HiCyan   = New("14")
)

// Progress bar gradient ends.
var (
	GradientFrom = "#5A56E0"
	GradientTo   = "#EE6FF8"
)
