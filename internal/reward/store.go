// Package reward holds the daily engagement engine: the once-per-day lock,
// the mission lottery state machine and the badge progression tracker.
// Nothing in this package touches the terminal; the UI drives it through
// plain method calls from its single update loop.
package reward

import (
	"context"

	"github.com/weplanet/ecoquest/internal/models"
)

// OfflineStore is the durable local mirror of the last progress and lock
// date the client observed. It is consulted only when the backend cannot
// answer.
type OfflineStore interface {
	Read(ctx context.Context) (models.OfflineSnapshot, error)
	Write(ctx context.Context, snap models.OfflineSnapshot) error
	Clear(ctx context.Context) error
	Update(ctx context.Context, fn func(*models.OfflineSnapshot)) error
}
