package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/reward"
)

// MissionModel drives the daily draw: lock check, reveal animation,
// decided pause, completion and the celebration beat.
type MissionModel struct {
	ctx     context.Context
	deps    Deps
	guard   *reward.LockGuard
	session *reward.Session
	keys    KeyMap
	spinner spinner.Model

	lockSeq     uint64
	offline     bool
	celebrating bool
	Message     string
	width       int
}

func NewMissionModel(ctx context.Context, deps Deps) MissionModel {
	deps = deps.normalized()
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = CurrentTheme.Accent
	return MissionModel{
		ctx:     ctx,
		deps:    deps,
		guard:   reward.NewLockGuard(deps.Backend, deps.Store, deps.UserID, reward.WithClock(deps.Now), reward.WithGuardLogger(deps.Log)),
		session: reward.NewSession(reward.WithSessionClock(deps.Now)),
		keys:    DefaultKeyMap(),
		spinner: sp,
		lockSeq: 1,
	}
}

// Init issues the first lock check under the sequence number the model
// starts with.
func (m MissionModel) Init() tea.Cmd {
	return tea.Batch(checkLockCmd(m.ctx, m.guard, m.lockSeq), m.spinner.Tick, lockRecheckCmd())
}

// recheck issues a new lock check; answers to older checks are dropped.
func (m *MissionModel) recheck() tea.Cmd {
	m.lockSeq++
	return checkLockCmd(m.ctx, m.guard, m.lockSeq)
}

func (m MissionModel) Update(msg tea.Msg) (MissionModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case lockRecheckMsg:
		cmd := m.recheck()
		return m, tea.Batch(cmd, lockRecheckCmd())

	case lockCheckedMsg:
		m.handleLockChecked(msg)
		return m, nil

	case revealTickMsg:
		more := m.session.Tick(msg.draw)
		if m.session.Decide(msg.draw) {
			return m, decidedPauseCmd(msg.draw)
		}
		if more {
			return m, revealTickCmd(msg.draw)
		}
		return m, nil

	case missionFetchedMsg:
		if msg.err != nil && msg.draw == m.session.Draw() {
			m.deps.Log.Warn("mission fetch failed, drawing a fallback", zap.Error(msg.err))
		}
		m.session.MissionFetched(msg.draw, msg.mission, msg.err)
		if m.session.Decide(msg.draw) {
			return m, decidedPauseCmd(msg.draw)
		}
		return m, nil

	case decidedPauseMsg:
		m.session.Present(msg.draw)
		return m, nil

	case completionMsg:
		return m.handleCompletion(msg)

	case celebrateDoneMsg:
		if msg.draw == m.session.Draw() {
			m.celebrating = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *MissionModel) handleLockChecked(msg lockCheckedMsg) {
	if msg.seq != m.lockSeq {
		return
	}
	c := msg.check
	if err := m.guard.Observe(m.ctx, c); err != nil {
		m.deps.Log.Warn("mirroring lock status failed", zap.Error(err))
	}
	m.offline = !c.Authoritative
	m.session.SetLockStatus(c.Status.Locked)
	if m.session.Rearm(c.Status.Date) {
		m.Message = ""
	}
}

func (m MissionModel) handleKey(msg tea.KeyMsg) (MissionModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Draw):
		if m.session.State() == reward.Idle {
			return m.startDraw()
		}
	case key.Matches(msg, m.keys.Reroll):
		if m.session.State() == reward.Presented {
			return m.startDraw()
		}
	case key.Matches(msg, m.keys.Done):
		return m.submit()
	case key.Matches(msg, m.keys.ResetLock):
		return m.resetLock()
	}
	return m, nil
}

func (m MissionModel) startDraw() (MissionModel, tea.Cmd) {
	draw, err := m.session.StartDraw()
	if err != nil {
		m.Message = drawRefusal(err)
		return m, nil
	}
	m.Message = ""
	ctx, backend, user := m.ctx, m.deps.Backend, m.deps.UserID
	fetch := func() tea.Msg {
		mission, err := backend.TodayMission(ctx, user)
		return missionFetchedMsg{draw: draw, mission: mission, err: err}
	}
	return m, tea.Batch(fetch, revealTickCmd(draw))
}

func drawRefusal(err error) string {
	switch {
	case errors.Is(err, reward.ErrLocked):
		return "Today's mission is already done. Come back tomorrow!"
	case errors.Is(err, reward.ErrStatusPending):
		return "Still checking today's status..."
	default:
		return err.Error()
	}
}

func (m MissionModel) submit() (MissionModel, tea.Cmd) {
	mission, err := m.session.BeginSubmit()
	if err != nil {
		if errors.Is(err, reward.ErrLocked) {
			m.Message = drawRefusal(err)
		}
		return m, nil
	}
	m.celebrating = true
	m.Message = ""
	// Checks issued before the completion must not undo its lock.
	m.lockSeq++

	draw := m.session.Draw()
	ctx, backend, user := m.ctx, m.deps.Backend, m.deps.UserID
	requestID := uuid.NewString()
	return m, func() tea.Msg {
		res, err := backend.CompleteMission(ctx, user, mission.ID, requestID)
		return completionMsg{draw: draw, result: res, err: err}
	}
}

func (m MissionModel) handleCompletion(msg completionMsg) (MissionModel, tea.Cmd) {
	if msg.draw != m.session.Draw() || m.session.State() != reward.Submitting {
		return m, nil
	}
	var (
		rec models.CompletionRecord
		err error
	)
	if msg.err == nil {
		rec, err = m.session.CompleteConfirmed(msg.result)
	} else {
		m.deps.Log.Warn("completion not confirmed, keeping it locally", zap.Error(msg.err))
		rec, err = m.session.CompleteBestEffort()
	}
	if err != nil {
		m.deps.Log.Error("completion transition failed", zap.Error(err))
		return m, nil
	}
	if err := reward.MirrorCompletion(m.ctx, m.deps.Store, rec); err != nil {
		m.deps.Log.Warn("mirroring completion failed", zap.Error(err))
	}
	return m, tea.Batch(celebrateCmd(msg.draw), emit(missionCompletedMsg{record: rec}))
}

func (m MissionModel) resetLock() (MissionModel, tea.Cmd) {
	if st := m.session.State(); st == reward.Rolling || st == reward.Submitting {
		return m, nil
	}
	if err := m.guard.ResetLock(m.ctx); err != nil {
		m.Message = fmt.Sprintf("Could not clear the local lock: %v", err)
		return m, nil
	}
	// An in-flight check may still carry the old lock.
	m.lockSeq++
	m.session.ResetDay()
	m.celebrating = false
	m.Message = "Local lock cleared."
	return m, nil
}

func (m MissionModel) View() string {
	t := CurrentTheme
	var b strings.Builder
	b.WriteString(t.Header.Render("Today's Eco Mission"))
	b.WriteString("  ")
	b.WriteString(t.Dim.Render(m.guard.Today()))
	if m.offline {
		b.WriteString("  ")
		b.WriteString(t.Warning.Render("[offline]"))
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderBody())
	if m.Message != "" {
		b.WriteString("\n\n")
		b.WriteString(t.Warning.Render(m.Message))
	}
	return b.String()
}

func (m MissionModel) renderBody() string {
	t := CurrentTheme
	s := m.session
	switch s.State() {
	case reward.Idle:
		switch {
		case !s.StatusKnown():
			return m.spinner.View() + " " + t.Dim.Render("Checking today's status...")
		case s.Locked():
			return renderCard(m.width, t.Success.Render("Today's mission is complete!"), t.Dim.Render("A new mission unlocks tomorrow."))
		default:
			return renderCard(m.width, t.Title.Render("Ready for today's mission?"), t.Dim.Render("Press enter to draw."))
		}

	case reward.Rolling:
		done, total := s.RevealProgress()
		p := s.Placeholder()
		return renderCard(m.width,
			t.Accent.Render("Drawing..."),
			t.Title.Render(truncate(p.Title, config.MaxTitleWidth)),
			t.Dim.Render(revealBar(done, total)))

	case reward.Decided:
		return renderCard(m.width,
			t.Success.Render("Decided!"),
			t.Title.Render(truncate(s.Mission().Title, config.MaxTitleWidth)))

	case reward.Presented:
		return renderMissionCard(m.width, *s.Mission())

	case reward.Submitting:
		return renderCard(m.width, t.Accent.Render("Great job! Recording your mission..."))

	case reward.Completed:
		if m.celebrating {
			return renderCard(m.width, t.Accent.Render("Great job!"))
		}
		return renderCompletionCard(m.width, *s.Record())
	}
	return ""
}

func revealBar(done, total int) string {
	const width = 20
	if total <= 0 {
		return ""
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	return strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
}
