package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/reward"
)

// --- Messages ---

type lockCheckedMsg struct {
	seq   uint64
	check reward.LockCheck
}

type lockRecheckMsg time.Time

type revealTickMsg struct{ draw int }

type missionFetchedMsg struct {
	draw    int
	mission models.Mission
	err     error
}

type decidedPauseMsg struct{ draw int }

type completionMsg struct {
	draw   int
	result models.CompletionResult
	err    error
}

type celebrateDoneMsg struct{ draw int }

// missionCompletedMsg tells the root model that today's mission was
// recorded, so progress views can refresh.
type missionCompletedMsg struct {
	record models.CompletionRecord
}

type badgesRefreshedMsg struct {
	refresh reward.Refresh
}

type badgePollMsg struct{ gen int }

type resetDoneMsg struct{ err error }

type reportExportedMsg struct {
	path string
	err  error
}

// --- Commands ---

func revealTickCmd(draw int) tea.Cmd {
	return tea.Tick(config.RevealTick, func(time.Time) tea.Msg { return revealTickMsg{draw: draw} })
}

func decidedPauseCmd(draw int) tea.Cmd {
	return tea.Tick(config.DecidedPause, func(time.Time) tea.Msg { return decidedPauseMsg{draw: draw} })
}

func celebrateCmd(draw int) tea.Cmd {
	return tea.Tick(config.CelebrateDuration, func(time.Time) tea.Msg { return celebrateDoneMsg{draw: draw} })
}

func lockRecheckCmd() tea.Cmd {
	return tea.Tick(config.LockRecheckInterval, func(t time.Time) tea.Msg { return lockRecheckMsg(t) })
}

func badgePollCmd(gen int) tea.Cmd {
	return tea.Tick(config.BadgePollInterval, func(time.Time) tea.Msg { return badgePollMsg{gen: gen} })
}

func checkLockCmd(ctx context.Context, guard *reward.LockGuard, seq uint64) tea.Cmd {
	return func() tea.Msg {
		return lockCheckedMsg{seq: seq, check: guard.Check(ctx)}
	}
}

func emit(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
