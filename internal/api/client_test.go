package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, WithLogger(zaptest.NewLogger(t)))
}

func TestTodayMissionSendsUserHeader(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mission/today" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.Header.Get("X-User-Id"); got != "7" {
			t.Errorf("expected user header 7, got %q", got)
		}
		if got := r.Header.Get("Cache-Control"); got != "no-store" {
			t.Errorf("expected no-store, got %q", got)
		}
		_, _ = w.Write([]byte(`{"mission_id":12,"title":"Sort your garbage","description":"d","default_point":34.6,"base_co2_reduction":180}`))
	})

	m, err := c.TodayMission(context.Background(), "7")
	if err != nil {
		t.Fatalf("TodayMission failed: %v", err)
	}
	if m.ID != 12 || m.Title != "Sort your garbage" || m.BasePoints != 35 || m.BaseCO2Reduction != 180 {
		t.Fatalf("unexpected mission %+v", m)
	}
	if m.Fallback {
		t.Fatalf("server mission must not be marked fallback")
	}
}

func TestTodayMissionMissingFieldIsMalformed(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"mission_id":12,"title":"no points"}`))
	})

	_, err := c.TodayMission(context.Background(), "7")
	if !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
	if !IsUnavailable(err) {
		t.Fatalf("malformed body should count as unavailable")
	}
}

func TestTodayStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user_id"); got != "1" {
			t.Errorf("expected user_id=1, got %q", got)
		}
		_, _ = w.Write([]byte(`{"lockedToday":true,"date":"2024-05-01"}`))
	})

	st, err := c.TodayStatus(context.Background(), "1")
	if err != nil {
		t.Fatalf("TodayStatus failed: %v", err)
	}
	if !st.Locked || st.Date != "2024-05-01" {
		t.Fatalf("unexpected status %+v", st)
	}
}

func TestTodayStatusRequiresLockedField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"date":"2024-05-01"}`))
	})

	if _, err := c.TodayStatus(context.Background(), "1"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestCompleteMission(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/mission/complete/12" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.Header.Get("Idempotency-Key"); got != "req-1" {
			t.Errorf("expected idempotency key, got %q", got)
		}
		_, _ = w.Write([]byte(`{"ok":true,"activity_id":99,"lockedToday":true,
			"mission":{"mission_id":12,"title":"t","default_point":30,"base_co2_reduction":200},
			"badge":{"badge_id":3,"badge_name":"Leaf"}}`))
	})

	res, err := c.CompleteMission(context.Background(), "1", 12, "req-1")
	if err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	if !res.OK || res.ActivityID != 99 || !res.LockedToday {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Mission == nil || res.Mission.BasePoints != 30 {
		t.Fatalf("expected echoed mission, got %+v", res.Mission)
	}
	if res.Badge == nil || res.Badge.Name != "Leaf" || res.Badge.BadgeID != 3 {
		t.Fatalf("expected badge award, got %+v", res.Badge)
	}
}

func TestCompleteMissionRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":false}`))
	})

	_, err := c.CompleteMission(context.Background(), "1", 12, "")
	if !errors.Is(err, ErrRejected) {
		t.Fatalf("expected ErrRejected, got %v", err)
	}
}

func TestCompleteMissionIgnoresPartialEcho(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true,"activity_id":1,"mission":{"title":"x"}}`))
	})

	res, err := c.CompleteMission(context.Background(), "1", 4, "")
	if err != nil {
		t.Fatalf("CompleteMission failed: %v", err)
	}
	if res.Mission != nil {
		t.Fatalf("echo without points should be ignored, got %+v", res.Mission)
	}
	if res.Badge != nil {
		t.Fatalf("expected no badge, got %+v", res.Badge)
	}
}

func TestBadges(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"badge_id":1,"badge_name":"Panda","unlock_order":1},
			{"badge_id":5,"badge_name":"Owl"}
		]`))
	})

	got, err := c.Badges(context.Background())
	if err != nil {
		t.Fatalf("Badges failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 badges, got %d", len(got))
	}
	if got[1].UnlockOrder != 5 {
		t.Fatalf("missing unlock_order should fall back to badge id, got %d", got[1].UnlockOrder)
	}
}

func TestBadgesRejectsNonArray(t *testing.T) {
	for _, body := range []string{`null`, `{"badges":[]}`, `[{"badge_name":"no id"}]`} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		if _, err := c.Badges(context.Background()); !errors.Is(err, ErrMalformed) {
			t.Fatalf("body %s: expected ErrMalformed, got %v", body, err)
		}
	}
}

func TestUserProgress(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/badge/user-progress/1" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"total_points":120,"total_co2_reduction":800,"current_badge_count":3,"total_missions_completed":4}`))
	})

	p, err := c.UserProgress(context.Background(), "1")
	if err != nil {
		t.Fatalf("UserProgress failed: %v", err)
	}
	if p.TotalPoints != 120 || p.TotalCO2Reduction != 800 || p.CurrentBadgeCount != 3 || p.TotalMissionsCompleted != 4 {
		t.Fatalf("unexpected progress %+v", p)
	}
}

func TestUserProgressMissingField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total_points":120}`))
	})

	if _, err := c.UserProgress(context.Background(), "1"); !errors.Is(err, ErrMalformed) {
		t.Fatalf("expected ErrMalformed, got %v", err)
	}
}

func TestStatusErrorKeepsBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "already done", http.StatusConflict)
	})

	err := c.ResetProgress(context.Background(), "1")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.Status != http.StatusConflict || se.Body == "" {
		t.Fatalf("unexpected status error %+v", se)
	}
	if !IsUnavailable(err) {
		t.Fatalf("status error should count as unavailable")
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(url, time.Second)
	_, err := c.EcoSummary(context.Background(), "1")
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestEcoSummary(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"month":"2024-05","sugi":1.25,"co2_g":17500}`))
	})

	s, err := c.EcoSummary(context.Background(), "1")
	if err != nil {
		t.Fatalf("EcoSummary failed: %v", err)
	}
	if s.Month != "2024-05" || s.CedarTrees != 1.25 || s.CO2Grams != 17500 {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestIsUnavailable(t *testing.T) {
	if IsUnavailable(nil) {
		t.Fatalf("nil is not unavailable")
	}
	if IsUnavailable(context.Canceled) {
		t.Fatalf("plain cancellation is not a backend failure")
	}
}
