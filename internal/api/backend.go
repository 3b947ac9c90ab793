// Package api is the HTTP client for the eco mission backend.
package api

import (
	"context"

	"github.com/weplanet/ecoquest/internal/models"
)

// Backend is the set of backend endpoints the reward engine consumes.
//
//go:generate mockgen -source=backend.go -destination=apimock/backend.go -package=apimock
type Backend interface {
	TodayMission(ctx context.Context, userID string) (models.Mission, error)
	TodayStatus(ctx context.Context, userID string) (models.DailyLockStatus, error)
	CompleteMission(ctx context.Context, userID string, missionID int64, requestID string) (models.CompletionResult, error)
	Badges(ctx context.Context) ([]models.BadgeCatalogEntry, error)
	UserProgress(ctx context.Context, userID string) (models.UserProgress, error)
	ResetProgress(ctx context.Context, userID string) error
	EcoSummary(ctx context.Context, userID string) (models.EcoSummary, error)
}

var _ Backend = (*Client)(nil)
