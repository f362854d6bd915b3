package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/staggeredsix/catbreak/internal/news"
)

func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return t.Format("Jan 2")
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderRow(a news.Article, glyph string, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	var title string
	if selected {
		title = rowSelectedStyle.Render("> " + truncate(a.Title, width-4))
	} else {
		title = rowTitleStyle.Render("  " + truncate(a.Title, width-4))
	}

	summary := "  " + rowSummaryStyle.Render(truncate(a.Summary, width-4))
	glyphs := "  " + glyphStyle.Render(news.GlyphRow(glyph, a.Rating))

	return title + "\n" + summary + "\n" + glyphs
}

func renderRows(articles []news.Article, cursor int, glyph string, height, width int) string {
	// Each row is 3 lines + 1 blank line
	const rowHeight = 4
	visible := height / rowHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(articles) {
		end = len(articles)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(renderRow(articles[i], glyph, i == cursor, width))
		if i < end-1 {
			b.WriteString("\n\n")
		}
	}

	return b.String()
}

func centerLine(s string, width, height int) string {
	pad := (width - lipgloss.Width(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
