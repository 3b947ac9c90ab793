package tui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/weplanet/ecoquest/internal/api"
	"github.com/weplanet/ecoquest/internal/reward"
	"github.com/weplanet/ecoquest/internal/util"
)

// Tab selects the visible screen.
type Tab int

const (
	TabMission Tab = iota
	TabBadges
)

func (t Tab) String() string {
	switch t {
	case TabBadges:
		return "Badges"
	default:
		return "Mission"
	}
}

// Deps are the collaborators shared by the screens.
type Deps struct {
	Backend    api.Backend
	Store      reward.OfflineStore
	UserID     string
	Log        *zap.Logger
	Now        func() time.Time
	ReportsDir string
}

func (d Deps) normalized() Deps {
	d.Log = util.OrNop(d.Log)
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// MainModel is the root bubbletea model that switches between the screens.
type MainModel struct {
	ctx    context.Context
	cancel context.CancelFunc

	tab     Tab
	mission MissionModel
	badges  BadgeModel
	keys    KeyMap
	help    help.Model

	confirmingReset bool
	width           int
	height          int
}

func NewMainModel(deps Deps) MainModel {
	deps = deps.normalized()
	ctx, cancel := context.WithCancel(context.Background())
	return MainModel{
		ctx:     ctx,
		cancel:  cancel,
		tab:     TabMission,
		mission: NewMissionModel(ctx, deps),
		badges:  NewBadgeModel(ctx, deps),
		keys:    DefaultKeyMap(),
		help:    help.New(),
	}
}

// Init checks today's lock and loads progress once, even before the badge
// tab is opened.
func (m MainModel) Init() tea.Cmd {
	return tea.Batch(m.mission.Init(), m.badges.Refresh())
}

// Close cancels requests still in flight.
func (m MainModel) Close() {
	m.cancel()
}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.FocusMsg:
		// The day may have changed while the terminal was in the background.
		cmds := []tea.Cmd{m.mission.recheck()}
		if m.tab == TabBadges {
			cmds = append(cmds, m.badges.Refresh())
		}
		return m, tea.Batch(cmds...)

	case missionCompletedMsg:
		cmd := m.badges.Refresh()
		return m, cmd
	}

	var missionCmd, badgeCmd tea.Cmd
	m.mission, missionCmd = m.mission.Update(msg)
	m.badges, badgeCmd = m.badges.Update(msg)
	return m, tea.Batch(missionCmd, badgeCmd)
}

func (m MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) && msg.String() == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	if m.confirmingReset {
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.confirmingReset = false
			cmd := m.badges.StartReset()
			return m, cmd
		case key.Matches(msg, m.keys.Cancel):
			m.confirmingReset = false
			m.badges.Message = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		return m.switchTab()
	}

	if m.tab == TabBadges {
		if key.Matches(msg, m.keys.ResetProgress) {
			m.confirmingReset = true
			return m, nil
		}
		var cmd tea.Cmd
		m.badges, cmd = m.badges.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.mission, cmd = m.mission.Update(msg)
	return m, cmd
}

func (m MainModel) switchTab() (tea.Model, tea.Cmd) {
	if m.tab == TabMission {
		m.tab = TabBadges
		cmd := m.badges.Show()
		return m, cmd
	}
	m.tab = TabMission
	m.badges.Hide()
	return m, nil
}

func (m MainModel) View() string {
	t := CurrentTheme
	var b strings.Builder
	b.WriteString(renderTabs(m.tab))
	b.WriteString("\n\n")
	if m.tab == TabBadges {
		b.WriteString(m.badges.View())
	} else {
		b.WriteString(m.mission.View())
	}
	b.WriteString("\n\n")
	if m.confirmingReset {
		b.WriteString(t.Error.Render("Reset all progress and badges?"))
		b.WriteString("  ")
		b.WriteString(m.help.View(m.keys.ForConfirm()))
	} else {
		b.WriteString(m.help.View(m.keys.ForTab(m.tab)))
	}
	b.WriteString("\n")
	b.WriteString(t.Dim.Render(versionLabel()))
	return b.String()
}
