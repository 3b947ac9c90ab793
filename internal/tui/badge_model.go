package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/reward"
)

// BadgeModel shows the badge collection. While visible it polls; hiding it
// stops the poll chain by bumping pollGen.
type BadgeModel struct {
	ctx     context.Context
	deps    Deps
	tracker *reward.Tracker
	keys    KeyMap
	bar     progress.Model

	visible   bool
	pollGen   int
	resetting bool
	Message   string
	width     int
}

func NewBadgeModel(ctx context.Context, deps Deps) BadgeModel {
	deps = deps.normalized()
	bar := progress.New(progress.WithDefaultGradient())
	bar.Width = config.ProgressBarWidth
	return BadgeModel{
		ctx:     ctx,
		deps:    deps,
		tracker: reward.NewTracker(deps.Backend, deps.Store, deps.UserID, deps.Log),
		keys:    DefaultKeyMap(),
		bar:     bar,
	}
}

// refresh issues a new refresh; Apply drops it if a newer one lands first.
func (m *BadgeModel) refresh() tea.Cmd {
	seq := m.tracker.Begin()
	ctx, tracker := m.ctx, m.tracker
	return func() tea.Msg {
		return badgesRefreshedMsg{refresh: tracker.Fetch(ctx, seq)}
	}
}

// Show marks the view visible, refreshes and starts a new poll chain.
func (m *BadgeModel) Show() tea.Cmd {
	m.visible = true
	m.pollGen++
	return tea.Batch(m.refresh(), badgePollCmd(m.pollGen))
}

// Hide stops polling.
func (m *BadgeModel) Hide() {
	m.visible = false
	m.pollGen++
}

// Refresh is the external trigger (focus, completion, mount).
func (m *BadgeModel) Refresh() tea.Cmd {
	return m.refresh()
}

// StartReset asks the server to reset progress.
func (m *BadgeModel) StartReset() tea.Cmd {
	if m.resetting {
		return nil
	}
	m.resetting = true
	m.Message = "Resetting progress..."
	ctx, tracker := m.ctx, m.tracker
	return func() tea.Msg {
		return resetDoneMsg{err: tracker.Reset(ctx)}
	}
}

func (m BadgeModel) Update(msg tea.Msg) (BadgeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case badgesRefreshedMsg:
		m.tracker.Apply(m.ctx, msg.refresh)
		return m, nil

	case badgePollMsg:
		if msg.gen != m.pollGen || !m.visible {
			return m, nil
		}
		cmd := m.refresh()
		return m, tea.Batch(cmd, badgePollCmd(msg.gen))

	case resetDoneMsg:
		m.resetting = false
		if m.tracker.ApplyReset(m.ctx, msg.err) {
			m.Message = "Progress reset."
			cmd := m.refresh()
			return m, cmd
		}
		m.Message = "Progress reset (offline mode)."
		return m, nil

	case reportExportedMsg:
		if msg.err != nil {
			m.Message = fmt.Sprintf("Export failed: %v", msg.err)
		} else {
			m.Message = "Report saved to " + msg.path
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Refresh):
			cmd := m.refresh()
			return m, cmd
		case key.Matches(msg, m.keys.Export):
			return m, m.exportCmd()
		}
	}
	return m, nil
}

func (m BadgeModel) exportCmd() tea.Cmd {
	rep := ProgressReport{
		Generated: m.deps.Now(),
		UserID:    m.deps.UserID,
		Progress:  m.tracker.Progress(),
		Displays:  m.tracker.Displays(),
		Summary:   m.tracker.Summary(),
		Offline:   m.tracker.Offline(),
	}
	dir := m.deps.ReportsDir
	return func() tea.Msg {
		path, err := WriteProgressReport(dir, rep)
		return reportExportedMsg{path: path, err: err}
	}
}

func (m BadgeModel) View() string {
	t := CurrentTheme
	tr := m.tracker
	var b strings.Builder
	b.WriteString(t.Header.Render("Badge Collection"))
	if tr.Offline() {
		b.WriteString("  ")
		b.WriteString(t.Warning.Render("[offline]"))
	}
	b.WriteString("\n\n")

	if !tr.Loaded() {
		b.WriteString(t.Dim.Render("Loading badges..."))
		return b.String()
	}

	b.WriteString(m.renderSummary())
	b.WriteString("\n\n")

	p := tr.Progress()
	displays := tr.Displays()
	unlocked := reward.UnlockedCount(displays)
	pct := 0.0
	if len(displays) > 0 {
		pct = float64(unlocked) / float64(len(displays))
	}
	b.WriteString(m.bar.ViewAs(pct))
	b.WriteString("  ")
	b.WriteString(t.Text.Render(FormatBadgeCount(unlocked, len(displays))))
	b.WriteString("\n")
	b.WriteString(t.Dim.Render(fmt.Sprintf("%s  ·  CO2 -%s  ·  %d missions",
		FormatPoints(p.TotalPoints), FormatCO2(p.TotalCO2Reduction), p.TotalMissionsCompleted)))
	b.WriteString("\n\n")
	b.WriteString(renderBadgeGrid(displays, m.width))

	if m.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(t.Warning.Render(m.Message))
	}
	return b.String()
}

// renderSummary shows this month's CO2 panel. A server error is shown in
// place of the numbers.
func (m BadgeModel) renderSummary() string {
	t := CurrentTheme
	s := m.tracker.Summary()
	if s == nil {
		msg := "Monthly summary unavailable"
		if err := m.tracker.SummaryErr(); err != nil {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		return t.Error.Render(truncate(msg, config.CardWidth*2))
	}
	return fmt.Sprintf("%s  %s %s %s",
		t.Dim.Render(s.Month),
		t.Text.Render("This month you saved the yearly CO2 of"),
		t.Accent.Render(fmt.Sprintf("%.2f", s.CedarTrees)),
		t.Text.Render(fmt.Sprintf("cedar trees (%s).", FormatCO2(s.CO2Grams))))
}
