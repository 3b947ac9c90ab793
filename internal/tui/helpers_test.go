package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/golang/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/weplanet/ecoquest/internal/api/apimock"
	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/database"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/reward"
	"github.com/weplanet/ecoquest/internal/testutil"
)

type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)}
}

func (c *testClock) Now() time.Time          { return c.now }
func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type testEnv struct {
	deps    Deps
	backend *apimock.MockBackend
	store   *database.Database
	clock   *testClock
}

func setupEnv(t *testing.T) testEnv {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "tui.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	ctrl := gomock.NewController(t)
	backend := apimock.NewMockBackend(ctrl)
	clock := newTestClock()
	deps := Deps{
		Backend:    backend,
		Store:      db,
		UserID:     "1",
		Log:        zaptest.NewLogger(t),
		Now:        clock.Now,
		ReportsDir: filepath.Join(t.TempDir(), "reports"),
	}
	return testEnv{deps: deps, backend: backend, store: db, clock: clock}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enterKey = tea.KeyMsg{Type: tea.KeyEnter}

var tumbler = testutil.NewMission().WithID(42).WithTitle("Carry a tumbler").WithPoints(30, 90).Build()

func unlocked(m MissionModel, day string) MissionModel {
	m, _ = m.Update(lockCheckedMsg{seq: m.lockSeq, check: reward.LockCheck{
		Status:        models.DailyLockStatus{Date: day},
		Authoritative: true,
	}})
	return m
}

// revealMission draws, delivers the fetch result and ticks the reveal to
// the presented card.
func revealMission(t *testing.T, m MissionModel, clock *testClock, mission models.Mission, fetchErr error) MissionModel {
	t.Helper()
	m, _ = m.Update(enterKey)
	if m.session.State() != reward.Rolling {
		t.Fatalf("expected rolling, got %s (%q)", m.session.State(), m.Message)
	}
	draw := m.session.Draw()
	m, _ = m.Update(missionFetchedMsg{draw: draw, mission: mission, err: fetchErr})
	for i := 0; m.session.State() == reward.Rolling; i++ {
		if i > 2*config.RevealTicks() {
			t.Fatalf("reveal never finished")
		}
		clock.Advance(config.RevealTick)
		m, _ = m.Update(revealTickMsg{draw: draw})
	}
	if m.session.State() != reward.Decided {
		t.Fatalf("expected decided, got %s", m.session.State())
	}
	m, _ = m.Update(decidedPauseMsg{draw: draw})
	if m.session.State() != reward.Presented {
		t.Fatalf("expected presented, got %s", m.session.State())
	}
	return m
}

func readSnapshot(t *testing.T, store *database.Database) models.OfflineSnapshot {
	t.Helper()
	snap, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return snap
}
