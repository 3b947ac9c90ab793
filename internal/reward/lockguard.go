package reward

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/weplanet/ecoquest/internal/api"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/util"
)

// LockCheck is the outcome of one lock check.
type LockCheck struct {
	Status models.DailyLockStatus
	// Authoritative is true when Status came from the server.
	Authoritative bool
	// Err is the backend error that forced the local fallback, if any.
	Err error
}

// LockGuard decides whether today's mission is already done. The server
// answer always wins; the stored lock date is used only when the server
// cannot be reached.
type LockGuard struct {
	backend api.Backend
	store   OfflineStore
	userID  string
	now     func() time.Time
	log     *zap.Logger
}

type GuardOption func(*LockGuard)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) GuardOption {
	return func(g *LockGuard) { g.now = now }
}

func WithGuardLogger(l *zap.Logger) GuardOption {
	return func(g *LockGuard) { g.log = util.OrNop(l) }
}

func NewLockGuard(backend api.Backend, store OfflineStore, userID string, opts ...GuardOption) *LockGuard {
	g := &LockGuard{
		backend: backend,
		store:   store,
		userID:  userID,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Today returns the local calendar day the guard is working with.
func (g *LockGuard) Today() string {
	return util.DayKey(g.now())
}

// Check asks the server and falls back to the stored lock date. It never
// writes, so it is safe to run off the update loop.
func (g *LockGuard) Check(ctx context.Context) LockCheck {
	today := g.Today()
	st, err := g.backend.TodayStatus(ctx, g.userID)
	if err == nil {
		st.Date = today
		return LockCheck{Status: st, Authoritative: true}
	}
	g.log.Warn("today status unavailable, using local lock date", zap.Error(err))

	snap, serr := g.store.Read(ctx)
	if serr != nil {
		// A corrupt progress record still leaves the lock date readable.
		g.log.Warn("offline snapshot read failed", zap.Error(serr))
	}
	return LockCheck{
		Status: models.DailyLockStatus{Date: today, Locked: snap.LockDate == today},
		Err:    err,
	}
}

// Observe mirrors an authoritative answer into the store. Fallback answers
// are never written back.
func (g *LockGuard) Observe(ctx context.Context, c LockCheck) error {
	if !c.Authoritative {
		return nil
	}
	today := c.Status.Date
	return g.store.Update(ctx, func(s *models.OfflineSnapshot) {
		switch {
		case c.Status.Locked:
			s.LockDate = today
		case s.LockDate == today:
			s.LockDate = ""
		}
	})
}

// IsLockedToday runs Check and Observe in one go.
func (g *LockGuard) IsLockedToday(ctx context.Context) bool {
	c := g.Check(ctx)
	if err := g.Observe(ctx, c); err != nil {
		g.log.Warn("mirroring lock status failed", zap.Error(err))
	}
	return c.Status.Locked
}

// ResetLock clears the local lock date only. The server keeps its own
// record, so the next successful check still reports what it knows.
func (g *LockGuard) ResetLock(ctx context.Context) error {
	return g.store.Update(ctx, func(s *models.OfflineSnapshot) {
		s.LockDate = ""
	})
}
