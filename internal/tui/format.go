package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/util"
)

// FormatCO2 formats a grams-equivalent reduction (e.g., "850 g", "1.2 kg").
func FormatCO2(grams int) string {
	if grams < 1000 && grams > -1000 {
		return fmt.Sprintf("%d g", grams)
	}
	return fmt.Sprintf("%.1f kg", float64(grams)/1000)
}

// FormatPoints formats a point total.
func FormatPoints(points int) string {
	return fmt.Sprintf("%d pt", points)
}

// FormatStars renders a 1-5 difficulty tier as filled and empty stars.
func FormatStars(stars int) string {
	stars = util.Clamp(stars, 0, 5)
	return strings.Repeat("★", stars) + strings.Repeat("☆", 5-stars)
}

// FormatBadgeCount formats unlocked badges for display.
func FormatBadgeCount(unlocked, total int) string {
	if total == 0 {
		return "No badges"
	}
	return fmt.Sprintf("%d/%d badges", unlocked, total)
}

// truncate shortens s to width display cells.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, config.TruncationSuffix)
}
