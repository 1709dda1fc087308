package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var branchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4dca7d")).Bold(true)

// colorEnabled reports whether styled output makes sense for stdout
func colorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// ColorBranchName styles a branch name for terminal output
func ColorBranchName(name string) string {
	if !colorEnabled() {
		return name
	}
	return branchStyle.Render(name)
}
