package models

import "time"

// Mission is a single daily eco task. It is immutable once drawn.
type Mission struct {
	ID               int64
	Title            string
	Description      string
	BasePoints       int
	BaseCO2Reduction int  // grams-equivalent
	Fallback         bool // drawn from the local pool, unknown to the server
}

// Stars returns the difficulty tier shown next to the mission.
func (m Mission) Stars() int {
	return DifficultyStars(m.BasePoints)
}

// DailyLockStatus is the once-per-day completion rule for a single day.
type DailyLockStatus struct {
	Date   string // local calendar day, YYYY-MM-DD
	Locked bool
}

// BadgeAward is the badge granted by a completion, if any.
type BadgeAward struct {
	BadgeID int
	Name    string
	Image   string
}

// CompletionRecord is created exactly once per finished mission.
type CompletionRecord struct {
	ActivityID    int64
	MissionID     int64
	PointsAwarded int
	CO2Reduction  int
	BadgeAwarded  *BadgeAward
	Timestamp     time.Time
	Confirmed     bool // false when built locally after a failed submit
}

// CompletionResult is the server's answer to a completion request.
type CompletionResult struct {
	OK          bool
	ActivityID  int64
	Mission     *Mission
	Badge       *BadgeAward
	LockedToday bool
}

// BadgeCatalogEntry is one badge of the static catalog.
type BadgeCatalogEntry struct {
	BadgeID     int
	Name        string
	Description string
	Category    string
	Image       string
	UnlockOrder int
}

// UserProgress is the server-owned reward ledger summary.
type UserProgress struct {
	TotalPoints            int `json:"total_points"`
	TotalCO2Reduction      int `json:"total_co2_reduction"`
	CurrentBadgeCount      int `json:"current_badge_count"`
	TotalMissionsCompleted int `json:"total_missions_completed"`
}

// InitialProgress is the state of a fresh or reset user: one badge unlocked.
func InitialProgress() UserProgress {
	return UserProgress{CurrentBadgeCount: 1}
}

// OfflineSnapshot mirrors the last progress and lock date the client saw.
type OfflineSnapshot struct {
	Progress *UserProgress
	LockDate string
}

// IsEmpty reports whether nothing has been stored yet.
func (s OfflineSnapshot) IsEmpty() bool {
	return s.Progress == nil && s.LockDate == ""
}

// BadgeDisplay is a catalog entry projected for rendering. Locked entries
// carry the mystery placeholder instead of the real values.
type BadgeDisplay struct {
	BadgeID            int
	UnlockOrder        int
	Unlocked           bool
	DisplayName        string
	DisplayDescription string
	DisplayCategory    string
	DisplayImage       string
}

// EcoSummary is the monthly CO2 panel. CedarTrees is the number of cedar
// trees whose yearly absorption matches the reduction.
type EcoSummary struct {
	Month      string
	CedarTrees float64
	CO2Grams   int
}

// DifficultyStars maps base points to a 1-5 star tier.
func DifficultyStars(points int) int {
	switch {
	case points >= 40:
		return 5
	case points >= 30:
		return 4
	case points >= 20:
		return 3
	case points >= 10:
		return 2
	default:
		return 1
	}
}
