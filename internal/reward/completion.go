package reward

import (
	"context"

	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/util"
)

// ApplyCompletion adds a completion's award to progress.
func ApplyCompletion(p models.UserProgress, rec models.CompletionRecord) models.UserProgress {
	p.TotalPoints += rec.PointsAwarded
	p.TotalCO2Reduction += rec.CO2Reduction
	p.TotalMissionsCompleted++
	if rec.BadgeAwarded != nil {
		p.CurrentBadgeCount++
	}
	return p
}

// MirrorCompletion writes a finished mission into the offline snapshot. The
// lock date becomes the completion day and, when a progress snapshot is
// present, the award is added to it. Confirmed and best-effort records are
// mirrored alike.
func MirrorCompletion(ctx context.Context, store OfflineStore, rec models.CompletionRecord) error {
	return store.Update(ctx, func(s *models.OfflineSnapshot) {
		s.LockDate = util.DayKey(rec.Timestamp)
		if s.Progress != nil {
			p := ApplyCompletion(*s.Progress, rec)
			s.Progress = &p
		}
	})
}
