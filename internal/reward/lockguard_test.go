package reward

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/weplanet/ecoquest/internal/api"
	"github.com/weplanet/ecoquest/internal/api/apimock"
	"github.com/weplanet/ecoquest/internal/models"
)

var errDown = &api.TransportError{Op: "test", Err: errors.New("connection refused")}

func TestLockGuardServerLockedIsMirrored(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := apimock.NewMockBackend(ctrl)
	store := setupStore(t)
	clock := newFakeClock("2024-05-01")

	backend.EXPECT().TodayStatus(gomock.Any(), "1").Return(models.DailyLockStatus{Locked: true, Date: "2024-04-30"}, nil)

	g := NewLockGuard(backend, store, "1", WithClock(clock.Now))
	if !g.IsLockedToday(ctx) {
		t.Fatalf("expected locked")
	}
	if snap := readSnapshot(t, store); snap.LockDate != "2024-05-01" {
		t.Fatalf("expected local lock date for today, got %q", snap.LockDate)
	}
}

func TestLockGuardServerWinsOverLocalLock(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := apimock.NewMockBackend(ctrl)
	store := setupStore(t)
	clock := newFakeClock("2024-05-01")
	if err := store.Write(ctx, models.OfflineSnapshot{LockDate: "2024-05-01"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	backend.EXPECT().TodayStatus(gomock.Any(), "1").Return(models.DailyLockStatus{Locked: false}, nil)

	g := NewLockGuard(backend, store, "1", WithClock(clock.Now))
	if g.IsLockedToday(ctx) {
		t.Fatalf("server said unlocked, local cache must not win")
	}
	if snap := readSnapshot(t, store); snap.LockDate != "" {
		t.Fatalf("expected stale lock date cleared, got %q", snap.LockDate)
	}
}

func TestLockGuardFallsBackToLocalDate(t *testing.T) {
	cases := []struct {
		name     string
		stored   string
		expected bool
	}{
		{"no record", "", false},
		{"today", "2024-05-01", true},
		{"yesterday", "2024-04-30", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			ctrl := gomock.NewController(t)
			backend := apimock.NewMockBackend(ctrl)
			store := setupStore(t)
			clock := newFakeClock("2024-05-01")
			if tc.stored != "" {
				if err := store.Write(ctx, models.OfflineSnapshot{LockDate: tc.stored}); err != nil {
					t.Fatalf("Write failed: %v", err)
				}
			}
			backend.EXPECT().TodayStatus(gomock.Any(), "1").Return(models.DailyLockStatus{}, errDown)

			g := NewLockGuard(backend, store, "1", WithClock(clock.Now))
			c := g.Check(ctx)
			if c.Authoritative {
				t.Fatalf("fallback answer must not be authoritative")
			}
			if !errors.Is(c.Err, errDown) {
				t.Fatalf("expected backend error to be carried, got %v", c.Err)
			}
			if c.Status.Locked != tc.expected {
				t.Fatalf("expected locked=%v, got %v", tc.expected, c.Status.Locked)
			}
			if err := g.Observe(ctx, c); err != nil {
				t.Fatalf("Observe failed: %v", err)
			}
			if snap := readSnapshot(t, store); snap.LockDate != tc.stored {
				t.Fatalf("fallback must not write, lock date now %q", snap.LockDate)
			}
		})
	}
}

func TestLockGuardResetLockIsLocalOnly(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	backend := apimock.NewMockBackend(ctrl)
	store := setupStore(t)
	clock := newFakeClock("2024-05-01")
	progress := models.UserProgress{TotalPoints: 10, CurrentBadgeCount: 2}
	if err := store.Write(ctx, models.OfflineSnapshot{LockDate: "2024-05-01", Progress: &progress}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	g := NewLockGuard(backend, store, "1", WithClock(clock.Now))
	if err := g.ResetLock(ctx); err != nil {
		t.Fatalf("ResetLock failed: %v", err)
	}
	snap := readSnapshot(t, store)
	if snap.LockDate != "" {
		t.Fatalf("expected lock date cleared, got %q", snap.LockDate)
	}
	if snap.Progress == nil || *snap.Progress != progress {
		t.Fatalf("reset lock must keep progress, got %+v", snap.Progress)
	}

	backend.EXPECT().TodayStatus(gomock.Any(), "1").Return(models.DailyLockStatus{Locked: true}, nil)
	if !g.IsLockedToday(ctx) {
		t.Fatalf("server lock must still win after a local reset")
	}
}
