package reward

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/weplanet/ecoquest/internal/api"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/util"
)

// Refresh is the result of one badge fetch, tagged with the sequence number
// it was issued under.
type Refresh struct {
	Seq        uint64
	Catalog    []models.BadgeCatalogEntry
	Progress   models.UserProgress
	Summary    *models.EcoSummary
	SummaryErr error
	Err        error
}

// Tracker keeps the badge catalog and user progress and projects them into
// the badge view. Every refresh takes a sequence number from Begin; Apply
// drops results older than the newest one already applied, so a slow poll
// can never overwrite a faster, newer answer.
//
// Fetch and Reset only read immutable fields and may run off the update
// loop. Everything else must be called from it.
type Tracker struct {
	backend api.Backend
	store   OfflineStore
	userID  string
	log     *zap.Logger

	issued  uint64
	applied uint64

	catalog       []models.BadgeCatalogEntry
	catalogLoaded bool
	progress      models.UserProgress
	loaded        bool
	offline       bool
	lastErr       error

	summary    *models.EcoSummary
	summaryErr error

	displays []models.BadgeDisplay
}

func NewTracker(backend api.Backend, store OfflineStore, userID string, log *zap.Logger) *Tracker {
	return &Tracker{
		backend: backend,
		store:   store,
		userID:  userID,
		log:     util.OrNop(log),
	}
}

func (t *Tracker) Loaded() bool                        { return t.loaded }
func (t *Tracker) Offline() bool                       { return t.offline }
func (t *Tracker) LastErr() error                      { return t.lastErr }
func (t *Tracker) Progress() models.UserProgress       { return t.progress }
func (t *Tracker) Displays() []models.BadgeDisplay     { return t.displays }
func (t *Tracker) Summary() *models.EcoSummary         { return t.summary }
func (t *Tracker) SummaryErr() error                   { return t.summaryErr }
func (t *Tracker) Catalog() []models.BadgeCatalogEntry { return t.catalog }

// Begin issues a new refresh sequence number.
func (t *Tracker) Begin() uint64 {
	t.issued++
	return t.issued
}

// Fetch loads catalog, progress and the eco summary in parallel. A summary
// failure is reported on its own and does not fail the refresh.
func (t *Tracker) Fetch(ctx context.Context, seq uint64) Refresh {
	r := Refresh{Seq: seq}
	var summary models.EcoSummary

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		catalog, err := t.backend.Badges(gctx)
		r.Catalog = catalog
		return err
	})
	g.Go(func() error {
		progress, err := t.backend.UserProgress(gctx, t.userID)
		r.Progress = progress
		return err
	})
	g.Go(func() error {
		summary, r.SummaryErr = t.backend.EcoSummary(ctx, t.userID)
		return nil
	})
	r.Err = g.Wait()
	if r.SummaryErr == nil {
		r.Summary = &summary
	}
	return r
}

// Apply installs a refresh result. It returns false when the result was
// superseded. On failure the view falls back to the stored progress, or the
// initial progress when nothing is stored, and to the last catalog fetched
// this session, or the built-in seed.
func (t *Tracker) Apply(ctx context.Context, r Refresh) bool {
	if r.Seq <= t.applied {
		return false
	}
	t.applied = r.Seq
	t.loaded = true
	t.summary, t.summaryErr = r.Summary, r.SummaryErr

	if r.Err == nil {
		t.catalog = r.Catalog
		t.catalogLoaded = true
		t.progress = r.Progress
		t.offline = false
		t.lastErr = nil
		if err := t.store.Update(ctx, func(s *models.OfflineSnapshot) {
			p := r.Progress
			s.Progress = &p
		}); err != nil {
			t.log.Warn("mirroring progress failed", zap.Error(err))
		}
		t.project()
		return true
	}

	t.log.Warn("badge refresh failed, using offline data", zap.Error(r.Err))
	t.offline = true
	t.lastErr = r.Err
	t.progress = t.storedProgress(ctx)
	if !t.catalogLoaded {
		t.catalog = SeedCatalog()
	}
	t.project()
	return true
}

func (t *Tracker) storedProgress(ctx context.Context) models.UserProgress {
	snap, err := t.store.Read(ctx)
	if err != nil {
		t.log.Warn("offline snapshot read failed", zap.Error(err))
	}
	if snap.Progress == nil {
		return models.InitialProgress()
	}
	return *snap.Progress
}

// Reset asks the server to reset the user's progress.
func (t *Tracker) Reset(ctx context.Context) error {
	return t.backend.ResetProgress(ctx, t.userID)
}

// ApplyReset handles the outcome of Reset. Any refresh issued before it is
// invalidated. It returns true when the caller should start a fresh refresh;
// on failure the stored progress is overwritten with the initial progress
// and the seed catalog is shown instead.
func (t *Tracker) ApplyReset(ctx context.Context, err error) bool {
	t.applied = t.issued
	if err == nil {
		return true
	}

	t.log.Warn("reset failed, resetting offline data", zap.Error(err))
	initial := models.InitialProgress()
	if werr := t.store.Update(ctx, func(s *models.OfflineSnapshot) {
		s.Progress = &initial
	}); werr != nil {
		t.log.Warn("writing initial progress failed", zap.Error(werr))
	}
	t.loaded = true
	t.offline = true
	t.lastErr = err
	t.progress = initial
	t.catalog = SeedCatalog()
	t.catalogLoaded = false
	t.project()
	return false
}

func (t *Tracker) project() {
	t.displays = ProjectBadges(t.catalog, t.progress.CurrentBadgeCount)
}
