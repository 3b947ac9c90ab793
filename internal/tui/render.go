package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/models"
)

func cardWidth(termWidth int) int {
	if termWidth > 0 && termWidth < config.CompactModeThreshold {
		return termWidth - 4
	}
	return config.CardWidth
}

func renderCard(termWidth int, lines ...string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CurrentTheme.Border).
		Padding(1, 2).
		Width(cardWidth(termWidth))
	return style.Render(strings.Join(lines, "\n"))
}

func renderMissionCard(termWidth int, m models.Mission) string {
	t := CurrentTheme
	lines := []string{
		t.Title.Render(truncate(m.Title, config.MaxTitleWidth)),
		t.Star.Render(FormatStars(m.Stars())),
	}
	if m.Description != "" {
		lines = append(lines, "", t.Text.Render(truncate(m.Description, config.MaxDescriptionWidth)))
	}
	lines = append(lines, "",
		fmt.Sprintf("%s  %s", t.Accent.Render(FormatPoints(m.BasePoints)), t.Dim.Render("CO2 -"+FormatCO2(m.BaseCO2Reduction))))
	if m.Fallback {
		lines = append(lines, t.Dim.Render("(offline mission)"))
	}
	return renderCard(termWidth, lines...)
}

func renderCompletionCard(termWidth int, rec models.CompletionRecord) string {
	t := CurrentTheme
	lines := []string{
		t.Success.Render("Mission complete!"),
		"",
		fmt.Sprintf("+%s  CO2 -%s", FormatPoints(rec.PointsAwarded), FormatCO2(rec.CO2Reduction)),
	}
	if rec.BadgeAwarded != nil && rec.BadgeAwarded.Name != "" {
		lines = append(lines, t.Accent.Render("New badge: "+truncate(rec.BadgeAwarded.Name, config.MaxTitleWidth)))
	}
	if !rec.Confirmed {
		lines = append(lines, t.Dim.Render("Saved on this device; the server could not confirm it."))
	}
	lines = append(lines, "", t.Dim.Render("See you tomorrow."))
	return renderCard(termWidth, lines...)
}

func renderBadgeCell(d models.BadgeDisplay) string {
	t := CurrentTheme
	w := config.BadgeCellWidth - 2
	name := t.Title.Render(truncate(d.DisplayName, w))
	category := t.Dim.Render(truncate(d.DisplayCategory, w))
	if !d.Unlocked {
		name = t.Mystery.Render(truncate(d.DisplayName, w))
		category = t.Mystery.Render(truncate(d.DisplayCategory, w))
	}
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(CurrentTheme.Border).
		Width(config.BadgeCellWidth).
		Render(fmt.Sprintf("#%d\n%s\n%s", d.UnlockOrder, name, category))
}

func renderBadgeGrid(displays []models.BadgeDisplay, termWidth int) string {
	cols := config.BadgeColumns
	if termWidth > 0 && termWidth < config.CompactModeThreshold {
		cols = 2
	}
	var rows []string
	for i := 0; i < len(displays); i += cols {
		end := i + cols
		if end > len(displays) {
			end = len(displays)
		}
		cells := make([]string, 0, cols)
		for _, d := range displays[i:end] {
			cells = append(cells, renderBadgeCell(d))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderTabs(active Tab) string {
	t := CurrentTheme
	var parts []string
	for _, tab := range []Tab{TabMission, TabBadges} {
		style := t.Tab
		if tab == active {
			style = t.ActiveTab
		}
		parts = append(parts, style.Render(tab.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
