package reward

import (
	"errors"
	"math/rand/v2"
	"time"

	"github.com/weplanet/ecoquest/internal/config"
	"github.com/weplanet/ecoquest/internal/models"
	"github.com/weplanet/ecoquest/internal/util"
)

// State is a MissionSession phase.
type State int

const (
	Idle State = iota
	Rolling
	Decided
	Presented
	Submitting
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Rolling:
		return "rolling"
	case Decided:
		return "decided"
	case Presented:
		return "presented"
	case Submitting:
		return "submitting"
	case Completed:
		return "completed"
	default:
		return "unknown"
	}
}

var (
	ErrLocked            = errors.New("today's mission is already done")
	ErrStatusPending     = errors.New("lock status not known yet")
	ErrInvalidTransition = errors.New("invalid session transition")
)

// Session is the lottery and completion state machine for one day. It is
// not safe for concurrent use; the UI calls it from its update loop only.
//
// Every draw gets a new id. Ticks and fetch results carry the id of the
// draw that started them and are dropped when it no longer matches.
type Session struct {
	state State

	statusKnown bool
	locked      bool

	draw        int
	join        RevealJoin
	ticks       int
	started     time.Time
	placeholder models.Mission
	pending     *models.Mission

	mission     *models.Mission
	record      *models.CompletionRecord
	completedOn string

	pool []models.Mission
	rng  *rand.Rand
	now  func() time.Time
}

type SessionOption func(*Session)

// WithRand fixes the random source used for placeholders and fallbacks.
func WithRand(rng *rand.Rand) SessionOption {
	return func(s *Session) { s.rng = rng }
}

func WithSessionClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

func NewSession(opts ...SessionOption) *Session {
	s := &Session{
		pool: FallbackMissions(),
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	return s
}

func (s *Session) State() State                      { return s.state }
func (s *Session) Draw() int                         { return s.draw }
func (s *Session) StatusKnown() bool                 { return s.statusKnown }
func (s *Session) Locked() bool                      { return s.locked }
func (s *Session) Placeholder() models.Mission       { return s.placeholder }
func (s *Session) Mission() *models.Mission          { return s.mission }
func (s *Session) Record() *models.CompletionRecord  { return s.record }
func (s *Session) RevealProgress() (done, total int) { return s.ticks, config.RevealTicks() }

// SetLockStatus records the latest lock answer.
func (s *Session) SetLockStatus(locked bool) {
	s.statusKnown = true
	s.locked = locked
}

// StartDraw enters Rolling from Idle, or re-draws from Presented. It is
// rejected while the lock status is unknown or the day is locked.
func (s *Session) StartDraw() (int, error) {
	switch s.state {
	case Idle, Presented:
	case Completed:
		return 0, ErrLocked
	default:
		return 0, ErrInvalidTransition
	}
	if !s.statusKnown {
		return 0, ErrStatusPending
	}
	if s.locked {
		return 0, ErrLocked
	}

	s.draw++
	s.state = Rolling
	s.join.Reset()
	s.ticks = 0
	s.started = s.now()
	s.pending = nil
	s.mission = nil
	s.placeholder = s.pool[s.rng.IntN(len(s.pool))]
	return s.draw, nil
}

// Tick advances the reveal animation by one frame and reports whether
// another tick is needed. The timer half of the join completes only once
// every frame has been shown and the full reveal duration has passed.
func (s *Session) Tick(draw int) bool {
	if draw != s.draw || s.state != Rolling || s.join.TimerDone() {
		return false
	}
	if s.ticks < config.RevealTicks() {
		s.ticks++
		s.placeholder = s.pool[s.rng.IntN(len(s.pool))]
	}
	if s.ticks < config.RevealTicks() || s.now().Sub(s.started) < config.RevealDuration {
		return true
	}
	s.join.MarkTimer()
	return false
}

// MissionFetched records the authoritative fetch result for a draw. A
// failed fetch is replaced by a mission from the local pool. The mission is
// held until the reveal timer has also finished.
func (s *Session) MissionFetched(draw int, m models.Mission, err error) {
	if draw != s.draw || s.state != Rolling || s.join.FetchDone() {
		return
	}
	if err != nil {
		m = drawFallback(s.rng, s.pool)
	}
	s.pending = &m
	s.join.MarkFetched()
}

// Decide moves Rolling to Decided once both halves of the join are in.
func (s *Session) Decide(draw int) bool {
	if draw != s.draw || s.state != Rolling || !s.join.Ready() {
		return false
	}
	s.mission = s.pending
	s.pending = nil
	s.state = Decided
	return true
}

// Present ends the decided pause.
func (s *Session) Present(draw int) bool {
	if draw != s.draw || s.state != Decided {
		return false
	}
	s.state = Presented
	return true
}

// BeginSubmit moves Presented to Submitting and returns the mission to
// report. Nothing is submitted once the day is locked.
func (s *Session) BeginSubmit() (models.Mission, error) {
	if s.state == Completed || (s.state == Presented && s.locked) {
		return models.Mission{}, ErrLocked
	}
	if s.state != Presented || s.mission == nil {
		return models.Mission{}, ErrInvalidTransition
	}
	s.state = Submitting
	return *s.mission, nil
}

// CompleteConfirmed finishes the day with the server's award.
func (s *Session) CompleteConfirmed(res models.CompletionResult) (models.CompletionRecord, error) {
	if s.state != Submitting {
		return models.CompletionRecord{}, ErrInvalidTransition
	}
	m := *s.mission
	if res.Mission != nil {
		m.BasePoints = res.Mission.BasePoints
		m.BaseCO2Reduction = res.Mission.BaseCO2Reduction
	}
	rec := models.CompletionRecord{
		ActivityID:    res.ActivityID,
		MissionID:     s.mission.ID,
		PointsAwarded: m.BasePoints,
		CO2Reduction:  m.BaseCO2Reduction,
		BadgeAwarded:  res.Badge,
		Confirmed:     true,
	}
	return s.finish(rec), nil
}

// CompleteBestEffort finishes the day after a failed submit, using the
// mission the client already has as the award. The server may never have
// recorded it.
func (s *Session) CompleteBestEffort() (models.CompletionRecord, error) {
	if s.state != Submitting {
		return models.CompletionRecord{}, ErrInvalidTransition
	}
	rec := models.CompletionRecord{
		MissionID:     s.mission.ID,
		PointsAwarded: s.mission.BasePoints,
		CO2Reduction:  s.mission.BaseCO2Reduction,
	}
	return s.finish(rec), nil
}

func (s *Session) finish(rec models.CompletionRecord) models.CompletionRecord {
	now := s.now()
	rec.Timestamp = now
	s.record = &rec
	s.completedOn = util.DayKey(now)
	s.locked = true
	s.statusKnown = true
	s.state = Completed
	return rec
}

// CompletedOn is the day the session finished, empty before that.
func (s *Session) CompletedOn() string { return s.completedOn }

// Rearm starts a new Idle cycle after a completion once the calendar day
// has moved past it and the lock is off.
func (s *Session) Rearm(today string) bool {
	if s.state != Completed || s.locked || today == s.completedOn {
		return false
	}
	s.reset()
	return true
}

// ResetDay drops the local notion of today's completion. It backs the
// debug reset-lock action.
func (s *Session) ResetDay() {
	s.locked = false
	s.statusKnown = true
	if s.state == Completed {
		s.reset()
	}
}

func (s *Session) reset() {
	s.state = Idle
	s.mission = nil
	s.record = nil
	s.pending = nil
	s.completedOn = ""
	s.join.Reset()
}
