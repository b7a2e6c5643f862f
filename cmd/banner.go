package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/fractionestate/specify/internal/output"
)

const banner = `+===============================================================+
| _______ ______ _______ ______ _______ _______ _______ _______ |
||    ___|   __ \   _   |      |_     _|_     _|       |    |  ||
||    ___|      <       |   ---| |   |  _|   |_|   -   |       ||
||___|   |___|__|___|___|______| |___| |_______|_______|__|____||
|                                                               |
| _______ _______ _______ _______ _______ _______               |
||    ___|     __|_     _|   _   |_     _|    ___|              |
||    ___|__     | |   | |       | |   | |    ___|              |
||_______|_______| |___| |___|___| |___| |_______|              |
+===============================================================+`

const tagline = "FractionEstate Spec Kit - Spec-Driven Development Toolkit"

// printBanner writes the ASCII banner, colored only when the terminal
// supports it and color is not disabled.
func printBanner() {
	styledBanner := banner
	styledTagline := tagline
	if !flagNoColor && os.Getenv("NO_COLOR") == "" && output.IsTerminal() &&
		termenv.DefaultOutput().ColorProfile() != termenv.Ascii {
		styledBanner = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render(banner)
		styledTagline = lipgloss.NewStyle().Italic(true).Faint(true).Render(tagline)
	}
	fmt.Fprintln(os.Stdout, styledBanner)
	fmt.Fprintln(os.Stdout, styledTagline)
	fmt.Fprintln(os.Stdout)
}
