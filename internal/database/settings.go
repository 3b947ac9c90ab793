package database

import (
	"context"
	"database/sql"
	"errors"
)

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (d *Database) GetSetting(ctx context.Context, key string) (string, bool) {
	value, ok, err := getSetting(ctx, d.DB, key)
	if err != nil {
		return "", false
	}
	return value, ok
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	return setSetting(ctx, d.DB, key, value)
}

func (d *Database) DeleteSetting(ctx context.Context, key string) error {
	return deleteSetting(ctx, d.DB, key)
}

func getSetting(ctx context.Context, q querier, key string) (string, bool, error) {
	var value *string
	err := q.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, wrapSettingErr("get", key, err)
	}
	if value == nil {
		return "", false, nil
	}
	return *value, true, nil
}

func setSetting(ctx context.Context, q querier, key, value string) error {
	_, err := q.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	return wrapSettingErr("set", key, err)
}

func deleteSetting(ctx context.Context, q querier, key string) error {
	_, err := q.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", key)
	return wrapSettingErr("delete", key, err)
}
