// Package stubserver is a small local implementation of the mission
// backend, used for offline play and integration tests. It enforces one
// completion per user per day and unlocks the next badge on every
// completion.
package stubserver

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/util"
)

// cedarGramsPerYear is the CO2 one cedar tree absorbs in a year.
const cedarGramsPerYear = 14000

type Server struct {
	store *Store
	log   *zap.Logger
	now   func() time.Time
}

type Option func(*Server)

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(store *Store, log *zap.Logger, opts ...Option) *Server {
	s := &Server{store: store, log: util.OrNop(log), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed, CORS-enabled handler.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/mission/today", s.todayMission).Methods(http.MethodGet)
	r.HandleFunc("/mission/today-status", s.todayStatus).Methods(http.MethodGet)
	r.HandleFunc("/mission/complete/{id:[0-9]+}", s.completeMission).Methods(http.MethodPost)
	r.HandleFunc("/badge/badges", s.badges).Methods(http.MethodGet)
	r.HandleFunc("/badge/user-progress/{user}", s.userProgress).Methods(http.MethodGet)
	r.HandleFunc("/reset-progress/{user}", s.resetProgress).Methods(http.MethodPost)
	r.HandleFunc("/ecoboard/summary/me", s.ecoSummary).Methods(http.MethodGet)
	r.Use(s.logRequests)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug("stub request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("took", time.Since(start)))
	})
}

func (s *Server) today() string {
	return util.DayKey(s.now())
}

func headerUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := r.Header.Get(config.UserIDHeader)
	if user == "" {
		writeError(w, http.StatusBadRequest, "missing "+config.UserIDHeader+" header")
		return "", false
	}
	return user, true
}

func (s *Server) todayMission(w http.ResponseWriter, r *http.Request) {
	if _, ok := headerUser(w, r); !ok {
		return
	}
	m, err := s.store.RandomMission(r.Context())
	if err != nil {
		s.internal(w, "draw mission", err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) todayStatus(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user_id")
	if user == "" {
		writeError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	day := s.today()
	locked, err := s.store.LockedOn(r.Context(), user, day)
	if err != nil {
		s.internal(w, "today status", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lockedToday": locked, "date": day})
}

func (s *Server) completeMission(w http.ResponseWriter, r *http.Request) {
	user, ok := headerUser(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid mission id")
		return
	}
	c, err := s.store.Complete(r.Context(), user, id, s.today(), r.Header.Get("Idempotency-Key"))
	switch {
	case errors.Is(err, ErrAlreadyCompleted):
		writeJSON(w, http.StatusConflict, map[string]any{"ok": false, "error": err.Error(), "lockedToday": true})
		return
	case errors.Is(err, ErrUnknownMission):
		writeJSON(w, http.StatusNotFound, map[string]any{"ok": false, "error": err.Error()})
		return
	case err != nil:
		s.internal(w, "complete mission", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"activity_id": c.ActivityID,
		"mission":     c.Mission,
		"badge":       c.Badge,
		"lockedToday": true,
	})
}

func (s *Server) badges(w http.ResponseWriter, r *http.Request) {
	badges, err := s.store.Badges(r.Context())
	if err != nil {
		s.internal(w, "badges", err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}

func (s *Server) userProgress(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Progress(r.Context(), mux.Vars(r)["user"])
	if err != nil {
		s.internal(w, "user progress", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) resetProgress(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Reset(r.Context(), mux.Vars(r)["user"]); err != nil {
		s.internal(w, "reset progress", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) ecoSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := headerUser(w, r)
	if !ok {
		return
	}
	month := s.now().Format("2006-01")
	co2, err := s.store.MonthCO2(r.Context(), user, month)
	if err != nil {
		s.internal(w, "eco summary", err)
		return
	}
	sugi := math.Round(float64(co2)/cedarGramsPerYear*100) / 100
	writeJSON(w, http.StatusOK, map[string]any{"month": month, "sugi": sugi, "co2_g": co2})
}

func (s *Server) internal(w http.ResponseWriter, op string, err error) {
	s.log.Error("stub handler failed", zap.String("op", op), zap.Error(err))
	writeError(w, http.StatusInternalServerError, op+" failed")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
