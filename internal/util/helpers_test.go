package util

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDayKeyUsesLocation(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*3600)
	instant := time.Date(2024, 3, 31, 20, 0, 0, 0, time.UTC)
	if got := DayKey(instant); got != "2024-03-31" {
		t.Fatalf("DayKey(UTC) = %q", got)
	}
	if got := DayKey(instant.In(tokyo)); got != "2024-04-01" {
		t.Fatalf("DayKey(JST) = %q", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 5) != 0 || Clamp(9, 0, 5) != 5 || Clamp(3, 0, 5) != 3 {
		t.Fatalf("Clamp returned unexpected values")
	}
}

func TestDataDirHonorsXDG(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_DATA_HOME", base)
	if got := DataDir("ecoquest"); got != filepath.Join(base, "ecoquest") {
		t.Fatalf("DataDir = %q", got)
	}
}

func TestParseUserDir(t *testing.T) {
	data := "# comment\nXDG_DOCUMENTS_DIR=\"$HOME/Docs\"\n"
	if got := parseUserDir(data, "XDG_DOCUMENTS_DIR"); got != "$HOME/Docs" {
		t.Fatalf("parseUserDir = %q", got)
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")
	logger, err := NewLogger("debug", path)
	if err != nil {
		t.Fatalf("NewLogger failed: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()
	if OrNop(nil) == nil {
		t.Fatalf("OrNop returned nil")
	}
}
