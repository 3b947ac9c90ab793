package config

import "time"

// Reveal animation and pacing.
const (
	RevealDuration    = 4 * time.Second
	RevealTick        = 80 * time.Millisecond
	DecidedPause      = 2 * time.Second
	CelebrateDuration = 1200 * time.Millisecond
)

// Refresh cadence.
const (
	BadgePollInterval   = 5 * time.Second
	LockRecheckInterval = time.Minute
)

// Local storage keys.
const (
	KeyLockDate = "mission_done_date"
	KeyProgress = "user_progress"
)

// Application settings.
const (
	AppName    = "ecoquest"
	DBFileName = "ecoquest.db"
	LogFile    = "ecoquest.log"
	DateLayout = "2006-01-02"
)

// UserIDHeader carries the configured user identity on every request.
const UserIDHeader = "X-User-Id"

// RevealTicks is the number of animation frames in one reveal.
func RevealTicks() int {
	return int(RevealDuration / RevealTick)
}
