package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the CLI.
var (
	colorHeader = color.New(color.Bold)
	colorOK     = color.New(color.FgGreen)
	colorWarn   = color.New(color.FgYellow, color.Bold)
	colorMuted  = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func formatHeader(s string) string {
	return colorHeader.Sprint(s)
}

func formatOK(s string) string {
	return colorOK.Sprint(s)
}

func formatWarn(s string) string {
	return colorWarn.Sprint(s)
}

func formatMuted(s string) string {
	return colorMuted.Sprint(s)
}
