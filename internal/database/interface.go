package database

import (
	"context"

	"github.com/weplanet/ecoquest/internal/models"
)

// SnapshotRepository is the offline fallback store contract.
type SnapshotRepository interface {
	Read(ctx context.Context) (models.OfflineSnapshot, error)
	Write(ctx context.Context, snap models.OfflineSnapshot) error
	Clear(ctx context.Context) error
	Update(ctx context.Context, fn func(*models.OfflineSnapshot)) error
}

// SettingsRepository is the raw key/value layer underneath the snapshot.
type SettingsRepository interface {
	GetSetting(ctx context.Context, key string) (string, bool)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}

// Repository combines all repository interfaces.
type Repository interface {
	SnapshotRepository
	SettingsRepository
}

var _ Repository = (*Database)(nil)
