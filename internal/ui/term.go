package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// High priority: bold red to demand attention
	colorHigh = color.New(color.FgRed, color.Bold)

	// Medium priority: plain white
	colorMedium = color.New(color.FgWhite)

	// Low priority: dim/grey
	colorLow = color.New(color.FgWhite, color.Faint)

	// Coach replies: yellow to make them pop
	colorCoach = color.New(color.FgYellow)

	// Headers: bold
	colorHeader = color.New(color.Bold)

	// Confirmations: green
	colorOK = color.New(color.FgGreen)

	// Warnings (degraded placements): magenta
	colorWarn = color.New(color.FgMagenta)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// formatHigh formats text for high-priority tasks.
func formatHigh(s string) string {
	return colorHigh.Sprint(s)
}

// formatLow formats text for low-priority tasks.
func formatLow(s string) string {
	return colorLow.Sprint(s)
}

// formatCoach formats coach reply text.
func formatCoach(s string) string {
	return colorCoach.Sprint(s)
}

// formatHeader formats text as a header.
func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

// formatOK formats confirmation text.
func formatOK(s string) string {
	return colorOK.Sprint(s)
}

// formatWarn formats warning text.
func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

// formatMuted formats text as secondary/muted.
func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
