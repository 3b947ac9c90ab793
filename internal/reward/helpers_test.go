package reward

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"testing"
	"time"

	"github.com/weplanet/ecoquest/internal/database"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/testutil"
)

func setupStore(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "reward.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakeClock struct {
	now time.Time
}

func newFakeClock(day string) *fakeClock {
	ts, err := time.ParseInLocation("2006-01-02 15:04", day+" 09:00", time.Local)
	if err != nil {
		panic(err)
	}
	return &fakeClock{now: ts}
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func catalogOf(n int) []models.BadgeCatalogEntry {
	return testutil.NewCatalog(n).Build()
}

func readSnapshot(t *testing.T, store OfflineStore) models.OfflineSnapshot {
	t.Helper()
	snap, err := store.Read(context.Background())
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	return snap
}
