package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/weplanet/ecoquest/internal/api"
	"github.com/weplanet/ecoquest/internal/api/apimock"
	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/database"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/testutil"
	"github.com/weplanet/ecoquest/internal/tui"
)

func TestResolvePathsDefaults(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)

	p := resolvePaths(&config.Config{})
	want := filepath.Join(base, config.AppName)
	if p.dataDir != want {
		t.Fatalf("dataDir = %q, want %q", p.dataDir, want)
	}
	if p.dbFile != filepath.Join(want, config.DBFileName) {
		t.Fatalf("dbFile = %q", p.dbFile)
	}
	if p.logFile != filepath.Join(want, config.LogFile) {
		t.Fatalf("logFile = %q", p.logFile)
	}
}

func TestResolvePathsOverrides(t *testing.T) {
	cfg := &config.Config{
		Storage: config.StorageConfig{DataDir: "/tmp/eco"},
		Log:     config.LogConfig{File: "/var/log/eco.log"},
	}
	p := resolvePaths(cfg)
	if p.dbFile != filepath.Join("/tmp/eco", config.DBFileName) {
		t.Fatalf("dbFile = %q", p.dbFile)
	}
	if p.logFile != "/var/log/eco.log" {
		t.Fatalf("logFile = %q", p.logFile)
	}
}

func statusDeps(t *testing.T, backend api.Backend) tui.Deps {
	t.Helper()
	db, err := database.Open(context.Background(), filepath.Join(t.TempDir(), "app.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	return tui.Deps{
		Backend: backend,
		Store:   db,
		UserID:  "1",
		Now:     func() time.Time { return now },
	}
}

func TestPrintStatusOnline(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := apimock.NewMockBackend(ctrl)
	deps := statusDeps(t, backend)

	backend.EXPECT().TodayStatus(gomock.Any(), "1").Return(models.DailyLockStatus{Locked: true}, nil)
	backend.EXPECT().Badges(gomock.Any()).Return(testutil.NewCatalog(4).Build(), nil)
	backend.EXPECT().UserProgress(gomock.Any(), "1").Return(testutil.NewProgress().WithBadges(2).WithMissions(1, 30, 1500).Build(), nil)
	backend.EXPECT().EcoSummary(gomock.Any(), "1").Return(models.EcoSummary{Month: "2024-05", CedarTrees: 0.11, CO2Grams: 1500}, nil)

	var out bytes.Buffer
	printStatus(context.Background(), &out, deps)
	got := out.String()
	for _, want := range []string{"(2024-05-01): done", "30 pt", "1.5 kg", "1 missions", "2/4 badges", "2024-05: 0.11 cedar trees"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output, got %q", want, got)
		}
	}
	if strings.Contains(got, "[offline]") {
		t.Fatalf("online status should not be marked offline: %q", got)
	}
}

func TestPrintStatusOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	backend := apimock.NewMockBackend(ctrl)
	deps := statusDeps(t, backend)
	down := &api.TransportError{Op: "test", Err: errors.New("connection refused")}

	backend.EXPECT().TodayStatus(gomock.Any(), "1").Return(models.DailyLockStatus{}, down)
	backend.EXPECT().Badges(gomock.Any()).Return(nil, down)
	backend.EXPECT().UserProgress(gomock.Any(), "1").Return(models.UserProgress{}, down)
	backend.EXPECT().EcoSummary(gomock.Any(), "1").Return(models.EcoSummary{}, down)

	var out bytes.Buffer
	printStatus(context.Background(), &out, deps)
	got := out.String()
	if !strings.Contains(got, "available [offline]") {
		t.Fatalf("expected offline availability, got %q", got)
	}
	if !strings.Contains(got, "1/8 badges") {
		t.Fatalf("expected seeded catalog with one badge, got %q", got)
	}
}
