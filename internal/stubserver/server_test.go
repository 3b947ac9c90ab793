package stubserver

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/weplanet/ecoquest/internal/api"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func setupServer(t *testing.T) (*api.Client, *testClock) {
	t.Helper()
	ctx := context.Background()
	store, err := OpenStore(ctx, filepath.Join(t.TempDir(), "stub.db"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	clock := &testClock{now: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local)}
	srv := httptest.NewServer(New(store, zaptest.NewLogger(t), WithClock(clock.Now)).Handler())
	t.Cleanup(srv.Close)
	return api.NewClient(srv.URL, 2*time.Second), clock
}

func TestDailyFlow(t *testing.T) {
	ctx := context.Background()
	c, clock := setupServer(t)

	st, err := c.TodayStatus(ctx, "1")
	if err != nil {
		t.Fatalf("TodayStatus failed: %v", err)
	}
	if st.Locked || st.Date != "2024-05-01" {
		t.Fatalf("unexpected initial status %+v", st)
	}

	m, err := c.TodayMission(ctx, "1")
	if err != nil {
		t.Fatalf("TodayMission failed: %v", err)
	}
	if m.ID == 0 || m.Title == "" || m.BasePoints == 0 {
		t.Fatalf("unexpected mission %+v", m)
	}

	res, err := c.CompleteMission(ctx, "1", m.ID, "")
	if err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	if !res.OK || !res.LockedToday || res.ActivityID == 0 {
		t.Fatalf("unexpected completion %+v", res)
	}
	if res.Badge == nil || res.Badge.BadgeID != 2 || res.Badge.Name == "" {
		t.Fatalf("expected the second badge awarded, got %+v", res.Badge)
	}

	st, _ = c.TodayStatus(ctx, "1")
	if !st.Locked {
		t.Fatalf("expected locked after completion")
	}
	_, err = c.CompleteMission(ctx, "1", m.ID, "")
	var se *api.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusConflict {
		t.Fatalf("expected 409 on a second completion, got %v", err)
	}

	p, err := c.UserProgress(ctx, "1")
	if err != nil {
		t.Fatalf("UserProgress failed: %v", err)
	}
	if p.CurrentBadgeCount != 2 || p.TotalMissionsCompleted != 1 || p.TotalPoints != m.BasePoints || p.TotalCO2Reduction != m.BaseCO2Reduction {
		t.Fatalf("unexpected progress %+v", p)
	}

	sum, err := c.EcoSummary(ctx, "1")
	if err != nil {
		t.Fatalf("EcoSummary failed: %v", err)
	}
	if sum.Month != "2024-05" || sum.CO2Grams != m.BaseCO2Reduction {
		t.Fatalf("unexpected summary %+v", sum)
	}

	clock.now = clock.now.Add(24 * time.Hour)
	st, _ = c.TodayStatus(ctx, "1")
	if st.Locked {
		t.Fatalf("expected unlocked on the next day")
	}
}

func TestIdempotentCompletion(t *testing.T) {
	ctx := context.Background()
	c, _ := setupServer(t)

	first, err := c.CompleteMission(ctx, "1", 3, "req-42")
	if err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	again, err := c.CompleteMission(ctx, "1", 3, "req-42")
	if err != nil {
		t.Fatalf("replayed completion failed: %v", err)
	}
	if again.ActivityID != first.ActivityID {
		t.Fatalf("expected the same activity, got %d and %d", first.ActivityID, again.ActivityID)
	}
	p, _ := c.UserProgress(ctx, "1")
	if p.TotalMissionsCompleted != 1 {
		t.Fatalf("replay must not credit twice, got %+v", p)
	}
}

func TestUnknownMission(t *testing.T) {
	c, _ := setupServer(t)
	_, err := c.CompleteMission(context.Background(), "1", 999, "")
	var se *api.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusNotFound {
		t.Fatalf("expected 404, got %v", err)
	}
}

func TestBadgesAndReset(t *testing.T) {
	ctx := context.Background()
	c, _ := setupServer(t)

	badges, err := c.Badges(ctx)
	if err != nil {
		t.Fatalf("Badges failed: %v", err)
	}
	if len(badges) != 8 {
		t.Fatalf("expected 8 badges, got %d", len(badges))
	}
	for i, b := range badges {
		if b.UnlockOrder != i+1 {
			t.Fatalf("expected unlock order %d, got %d", i+1, b.UnlockOrder)
		}
	}

	if _, err := c.CompleteMission(ctx, "1", 1, ""); err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	if err := c.ResetProgress(ctx, "1"); err != nil {
		t.Fatalf("ResetProgress failed: %v", err)
	}
	p, err := c.UserProgress(ctx, "1")
	if err != nil {
		t.Fatalf("UserProgress failed: %v", err)
	}
	if p.TotalPoints != 0 || p.TotalCO2Reduction != 0 || p.CurrentBadgeCount != 1 || p.TotalMissionsCompleted != 0 {
		t.Fatalf("expected initial progress after reset, got %+v", p)
	}
	st, _ := c.TodayStatus(ctx, "1")
	if st.Locked {
		t.Fatalf("reset should forget today's completion")
	}
}

func TestMissingUserHeader(t *testing.T) {
	c, _ := setupServer(t)
	_, err := c.TodayMission(context.Background(), "")
	var se *api.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestLastBadgeStaysLast(t *testing.T) {
	ctx := context.Background()
	store, err := OpenStore(ctx, filepath.Join(t.TempDir(), "stub.db"))
	if err != nil {
		t.Fatalf("OpenStore failed: %v", err)
	}
	defer store.Close()

	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < 10; i++ {
		if _, err := store.Complete(ctx, "1", 1, day.AddDate(0, 0, i).Format("2006-01-02"), ""); err != nil {
			t.Fatalf("Complete day %d failed: %v", i, err)
		}
	}
	p, err := store.Progress(ctx, "1")
	if err != nil {
		t.Fatalf("Progress failed: %v", err)
	}
	if p.CurrentBadgeCount != 8 || p.TotalMissionsCompleted != 10 {
		t.Fatalf("unexpected progress %+v", p)
	}
}
