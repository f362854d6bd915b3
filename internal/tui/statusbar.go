package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func renderStatusBar(articleCount int, hints string, width int, err error) string {
	left := fmt.Sprintf(" %d articles", articleCount)
	if articleCount == 1 {
		left = " 1 article"
	}
	if err != nil {
		left = " " + statusErrStyle.Render(err.Error())
	}

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
