package database

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/util"
)

// progressEnvelope is the stored form of the progress snapshot.
type progressEnvelope struct {
	Progress json.RawMessage `json:"progress"`
	Digest   string          `json:"digest"`
}

// Read returns the stored snapshot; an empty snapshot when nothing is stored.
// A progress record that fails its digest check is dropped and reported as
// ErrSnapshotCorrupt alongside whatever else could be read.
func (d *Database) Read(ctx context.Context) (models.OfflineSnapshot, error) {
	snap, err := readSnapshot(ctx, d.DB)
	return snap, wrapSnapshotErr("read", err)
}

// Write replaces the stored snapshot. A nil progress or empty lock date
// removes the corresponding record.
func (d *Database) Write(ctx context.Context, snap models.OfflineSnapshot) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapSnapshotErr("write", err)
	}
	if err := writeSnapshot(ctx, tx, snap); err != nil {
		_ = tx.Rollback()
		return wrapSnapshotErr("write", err)
	}
	return wrapSnapshotErr("write", tx.Commit())
}

// Clear removes both records.
func (d *Database) Clear(ctx context.Context) error {
	return d.Write(ctx, models.OfflineSnapshot{})
}

// Update applies fn to the stored snapshot inside one transaction.
// A corrupted progress record is handed to fn as absent.
func (d *Database) Update(ctx context.Context, fn func(*models.OfflineSnapshot)) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return wrapSnapshotErr("update", err)
	}
	snap, err := readSnapshot(ctx, tx)
	if err != nil && !errors.Is(err, ErrSnapshotCorrupt) {
		_ = tx.Rollback()
		return wrapSnapshotErr("update", err)
	}
	fn(&snap)
	if err := writeSnapshot(ctx, tx, snap); err != nil {
		_ = tx.Rollback()
		return wrapSnapshotErr("update", err)
	}
	return wrapSnapshotErr("update", tx.Commit())
}

func readSnapshot(ctx context.Context, q querier) (models.OfflineSnapshot, error) {
	var snap models.OfflineSnapshot
	date, ok, err := getSetting(ctx, q, config.KeyLockDate)
	if err != nil {
		return snap, err
	}
	if ok {
		snap.LockDate = date
	}
	raw, ok, err := getSetting(ctx, q, config.KeyProgress)
	if err != nil || !ok {
		return snap, err
	}
	progress, err := decodeProgress(raw)
	if err != nil {
		return snap, err
	}
	snap.Progress = &progress
	return snap, nil
}

func writeSnapshot(ctx context.Context, q querier, snap models.OfflineSnapshot) error {
	if snap.LockDate == "" {
		if err := deleteSetting(ctx, q, config.KeyLockDate); err != nil {
			return err
		}
	} else if err := setSetting(ctx, q, config.KeyLockDate, snap.LockDate); err != nil {
		return err
	}
	if snap.Progress == nil {
		return deleteSetting(ctx, q, config.KeyProgress)
	}
	raw, err := encodeProgress(*snap.Progress)
	if err != nil {
		return err
	}
	return setSetting(ctx, q, config.KeyProgress, raw)
}

func encodeProgress(p models.UserProgress) (string, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	env, err := json.Marshal(progressEnvelope{Progress: body, Digest: util.Digest(body)})
	if err != nil {
		return "", err
	}
	return string(env), nil
}

func decodeProgress(raw string) (models.UserProgress, error) {
	var env progressEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return models.UserProgress{}, ErrSnapshotCorrupt
	}
	if !util.VerifyDigest(env.Progress, env.Digest) {
		return models.UserProgress{}, ErrSnapshotCorrupt
	}
	var p models.UserProgress
	if err := json.Unmarshal(env.Progress, &p); err != nil {
		return models.UserProgress{}, ErrSnapshotCorrupt
	}
	return p, nil
}
