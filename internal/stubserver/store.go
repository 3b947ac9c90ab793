package stubserver

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrAlreadyCompleted = errors.New("mission already completed today")
	ErrUnknownMission   = errors.New("unknown mission")
)

type MissionRow struct {
	ID               int64  `db:"mission_id" json:"mission_id"`
	Title            string `db:"title" json:"title"`
	Description      string `db:"description" json:"description"`
	DefaultPoint     int    `db:"default_point" json:"default_point"`
	BaseCO2Reduction int    `db:"base_co2_reduction" json:"base_co2_reduction"`
}

type BadgeRow struct {
	BadgeID      int    `db:"badge_id" json:"badge_id"`
	BadgeName    string `db:"badge_name" json:"badge_name"`
	Description  string `db:"description" json:"description"`
	CategoryName string `db:"category_name" json:"category_name"`
	BadgeImage   string `db:"badge_image" json:"badge_image"`
	UnlockOrder  int    `db:"unlock_order" json:"unlock_order"`
}

type ProgressRow struct {
	TotalPoints            int `db:"total_points" json:"total_points"`
	TotalCO2Reduction      int `db:"total_co2_reduction" json:"total_co2_reduction"`
	CurrentBadgeCount      int `db:"current_badge_count" json:"current_badge_count"`
	TotalMissionsCompleted int `db:"total_missions_completed" json:"total_missions_completed"`
}

type Completion struct {
	ActivityID int64
	Mission    MissionRow
	Badge      *BadgeRow
}

// Store is the stub backend's sqlite state.
type Store struct {
	db *sqlx.DB
}

// OpenStore connects to dsn, creates the schema and seeds the catalogs.
func OpenStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to stub database: %w", err)
	}
	db.SetMaxOpenConns(1)
	s := &Store{db: db}
	if err := s.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	if err := s.seed(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to seed catalogs: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS missions (
			mission_id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			default_point INTEGER NOT NULL,
			base_co2_reduction INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS badges (
			badge_id INTEGER PRIMARY KEY,
			badge_name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category_name TEXT NOT NULL DEFAULT '',
			badge_image TEXT NOT NULL DEFAULT '',
			unlock_order INTEGER NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS user_progress (
			user_id TEXT PRIMARY KEY,
			total_points INTEGER NOT NULL DEFAULT 0,
			total_co2_reduction INTEGER NOT NULL DEFAULT 0,
			current_badge_count INTEGER NOT NULL DEFAULT 1,
			total_missions_completed INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS completions (
			activity_id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT NOT NULL,
			day TEXT NOT NULL,
			mission_id INTEGER NOT NULL,
			points INTEGER NOT NULL,
			co2 INTEGER NOT NULL,
			badge_id INTEGER,
			request_key TEXT,
			UNIQUE(user_id, day)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_key ON completions(user_id, request_key);`,
	}
	for _, q := range schema {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

var seedMissions = []MissionRow{
	{1, "Carry your own bottle", "Skip one plastic bottle today.", 15, 80},
	{2, "Take the stairs", "Use the stairs instead of the elevator all day.", 10, 40},
	{3, "Unplug idle chargers", "Pull chargers that are not charging anything.", 20, 120},
	{4, "Eat a meat-free meal", "Choose a plant-based lunch or dinner.", 35, 900},
	{5, "Line-dry your laundry", "Skip the dryer for one load.", 30, 700},
	{6, "Ride a bike", "Replace one short car trip with a bike ride.", 40, 1200},
	{7, "Shorter shower", "Keep your shower under five minutes.", 25, 300},
}

var seedBadges = []BadgeRow{
	{1, "Giant Panda", "Its bamboo forests keep shrinking.", "Endangered animals", "/images/badges/panda.png", 1},
	{2, "Whooper Swan", "Wetland loss threatens its wintering grounds.", "Birds", "/images/badges/swan.png", 2},
	{3, "Loggerhead Turtle", "Plastic in the sea is a daily danger.", "Marine life", "/images/badges/turtle.png", 3},
	{4, "Japanese Eel", "River barriers block its long migration.", "Marine life", "/images/badges/eel.png", 4},
	{5, "Cherry Orchid", "A rare orchid of undisturbed forest floors.", "Rare plants", "/images/badges/orchid.png", 5},
	{6, "Red-crowned Crane", "A symbol of longevity living in shrinking marshes.", "Birds", "/images/badges/crane.png", 6},
	{7, "Snow Leopard", "Warming mountains push its range ever higher.", "Endangered animals", "/images/badges/leopard.png", 7},
	{8, "Coral Reef", "Reefs bleach as the ocean warms.", "Marine life", "/images/badges/coral.png", 8},
}

func (s *Store) seed(ctx context.Context) error {
	for _, m := range seedMissions {
		if _, err := s.db.NamedExecContext(ctx, `INSERT OR IGNORE INTO missions
			(mission_id, title, description, default_point, base_co2_reduction)
			VALUES (:mission_id, :title, :description, :default_point, :base_co2_reduction)`, m); err != nil {
			return err
		}
	}
	for _, b := range seedBadges {
		if _, err := s.db.NamedExecContext(ctx, `INSERT OR IGNORE INTO badges
			(badge_id, badge_name, description, category_name, badge_image, unlock_order)
			VALUES (:badge_id, :badge_name, :description, :category_name, :badge_image, :unlock_order)`, b); err != nil {
			return err
		}
	}
	return nil
}

// RandomMission draws one mission from the catalog.
func (s *Store) RandomMission(ctx context.Context) (MissionRow, error) {
	var m MissionRow
	err := s.db.GetContext(ctx, &m, `SELECT * FROM missions ORDER BY RANDOM() LIMIT 1`)
	return m, err
}

func (s *Store) LockedOn(ctx context.Context, userID, day string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM completions WHERE user_id = ? AND day = ?`, userID, day)
	return n > 0, err
}

func (s *Store) Badges(ctx context.Context) ([]BadgeRow, error) {
	badges := []BadgeRow{}
	err := s.db.SelectContext(ctx, &badges, `SELECT * FROM badges ORDER BY unlock_order`)
	return badges, err
}

// Progress returns the user's counters; unknown users start with one badge.
func (s *Store) Progress(ctx context.Context, userID string) (ProgressRow, error) {
	return progressOf(ctx, s.db, userID)
}

func progressOf(ctx context.Context, q sqlx.QueryerContext, userID string) (ProgressRow, error) {
	var p ProgressRow
	err := sqlx.GetContext(ctx, q, &p, `SELECT total_points, total_co2_reduction, current_badge_count, total_missions_completed
		FROM user_progress WHERE user_id = ?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ProgressRow{CurrentBadgeCount: 1}, nil
	}
	return p, err
}

// Complete records today's completion for userID. A repeated request key
// returns the original completion; any other second completion on the same
// day fails with ErrAlreadyCompleted. Each completion unlocks the next
// badge in unlock order, if there is one.
func (s *Store) Complete(ctx context.Context, userID string, missionID int64, day, key string) (Completion, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return Completion{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if key != "" {
		if c, ok, err := replay(ctx, tx, userID, key); err != nil || ok {
			return c, err
		}
	}

	var locked int
	if err := tx.GetContext(ctx, &locked, `SELECT COUNT(*) FROM completions WHERE user_id = ? AND day = ?`, userID, day); err != nil {
		return Completion{}, err
	}
	if locked > 0 {
		return Completion{}, ErrAlreadyCompleted
	}

	var m MissionRow
	if err := tx.GetContext(ctx, &m, `SELECT * FROM missions WHERE mission_id = ?`, missionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Completion{}, ErrUnknownMission
		}
		return Completion{}, err
	}

	p, err := progressOf(ctx, tx, userID)
	if err != nil {
		return Completion{}, err
	}
	c := Completion{Mission: m}
	var next BadgeRow
	err = tx.GetContext(ctx, &next, `SELECT * FROM badges WHERE unlock_order > ? ORDER BY unlock_order LIMIT 1`, p.CurrentBadgeCount)
	switch {
	case err == nil:
		c.Badge = &next
		p.CurrentBadgeCount = next.UnlockOrder
	case !errors.Is(err, sql.ErrNoRows):
		return Completion{}, err
	}
	p.TotalPoints += m.DefaultPoint
	p.TotalCO2Reduction += m.BaseCO2Reduction
	p.TotalMissionsCompleted++

	if _, err := tx.ExecContext(ctx, `INSERT INTO user_progress
		(user_id, total_points, total_co2_reduction, current_badge_count, total_missions_completed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_points = excluded.total_points,
			total_co2_reduction = excluded.total_co2_reduction,
			current_badge_count = excluded.current_badge_count,
			total_missions_completed = excluded.total_missions_completed`,
		userID, p.TotalPoints, p.TotalCO2Reduction, p.CurrentBadgeCount, p.TotalMissionsCompleted); err != nil {
		return Completion{}, err
	}

	var badgeID sql.NullInt64
	if c.Badge != nil {
		badgeID = sql.NullInt64{Int64: int64(c.Badge.BadgeID), Valid: true}
	}
	res, err := tx.ExecContext(ctx, `INSERT INTO completions (user_id, day, mission_id, points, co2, badge_id, request_key)
		VALUES (?, ?, ?, ?, ?, ?, NULLIF(?, ''))`,
		userID, day, m.ID, m.DefaultPoint, m.BaseCO2Reduction, badgeID, key)
	if err != nil {
		return Completion{}, err
	}
	if c.ActivityID, err = res.LastInsertId(); err != nil {
		return Completion{}, err
	}
	return c, tx.Commit()
}

func replay(ctx context.Context, tx *sqlx.Tx, userID, key string) (Completion, bool, error) {
	var row struct {
		ActivityID int64         `db:"activity_id"`
		MissionID  int64         `db:"mission_id"`
		BadgeID    sql.NullInt64 `db:"badge_id"`
	}
	err := tx.GetContext(ctx, &row, `SELECT activity_id, mission_id, badge_id FROM completions
		WHERE user_id = ? AND request_key = ?`, userID, key)
	if errors.Is(err, sql.ErrNoRows) {
		return Completion{}, false, nil
	}
	if err != nil {
		return Completion{}, false, err
	}
	c := Completion{ActivityID: row.ActivityID}
	if err := tx.GetContext(ctx, &c.Mission, `SELECT * FROM missions WHERE mission_id = ?`, row.MissionID); err != nil {
		return Completion{}, false, err
	}
	if row.BadgeID.Valid {
		var b BadgeRow
		if err := tx.GetContext(ctx, &b, `SELECT * FROM badges WHERE badge_id = ?`, row.BadgeID.Int64); err != nil {
			return Completion{}, false, err
		}
		c.Badge = &b
	}
	return c, true, nil
}

// Reset puts the user back to the initial progress and forgets their
// completions.
func (s *Store) Reset(ctx context.Context, userID string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.ExecContext(ctx, `DELETE FROM completions WHERE user_id = ?`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM user_progress WHERE user_id = ?`, userID); err != nil {
		return err
	}
	return tx.Commit()
}

// MonthCO2 sums the CO2 reduction of a user's completions in a month
// ("YYYY-MM").
func (s *Store) MonthCO2(ctx context.Context, userID, month string) (int, error) {
	var total int
	err := s.db.GetContext(ctx, &total, `SELECT COALESCE(SUM(co2), 0) FROM completions
		WHERE user_id = ? AND day LIKE ? || '-%'`, userID, month)
	return total, err
}
