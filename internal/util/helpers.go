package util

import (
	"time"

	"github.com/weplanet/ecoquest/internal/config"
)

// Clamp constrains a value to a range.
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// DayKey formats t as a calendar day in t's own location.
func DayKey(t time.Time) string {
	return t.Format(config.DateLayout)
}
