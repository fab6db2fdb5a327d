package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

const defaultLocalDBName = "seventeen_local.db"

type SQLiteService struct {
	db          *sql.DB
	recentLimit int
}

func NewSQLiteServiceFromEnv() (*SQLiteService, error) {
	dbPath, err := historyLocalDatabasePathFromEnv()
	if err != nil {
		return nil, err
	}
	return NewSQLiteService(dbPath)
}

func NewSQLiteService(dbPath string) (*SQLiteService, error) {
	dbPath = strings.TrimSpace(dbPath)
	if dbPath == "" {
		return nil, fmt.Errorf("empty sqlite database path")
	}
	if dbPath != ":memory:" {
		parent := filepath.Dir(dbPath)
		if parent != "" && parent != "." {
			if err := os.MkdirAll(parent, 0o755); err != nil {
				return nil, err
			}
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	for _, pragma := range []string{
		`PRAGMA busy_timeout = 5000;`,
		`PRAGMA journal_mode = WAL;`,
		`PRAGMA foreign_keys = ON;`,
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := ensureSQLiteHistorySchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteService{
		db:          db,
		recentLimit: recentLimitFromEnv(),
	}, nil
}

func (s *SQLiteService) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteService) RecordRound(userID uint64, round Round) {
	if userID == 0 || strings.TrimSpace(round.SessionID) == "" {
		return
	}
	playedAt := round.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now().UTC()
	}
	resultsRaw, err := json.Marshal(round.Results)
	if err != nil {
		log.Printf("[History] marshal round results failed: user=%d session=%s err=%v", userID, round.SessionID, err)
		return
	}
	logRaw, err := json.Marshal(round.Log)
	if err != nil {
		log.Printf("[History] marshal round log failed: user=%d session=%s err=%v", userID, round.SessionID, err)
		return
	}

	playedAtMs := playedAt.UTC().UnixMilli()
	nowMs := time.Now().UTC().UnixMilli()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Printf("[History] begin record round tx failed: user=%d session=%s err=%v", userID, round.SessionID, err)
		return
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO round_history (
    user_id, session_id, game_id, played_at_ms, seats, winner_seat, winner_name,
    human_won, void, results_json, log_json, created_at_ms
)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id, session_id, game_id) DO UPDATE
SET
    played_at_ms = excluded.played_at_ms,
    seats = excluded.seats,
    winner_seat = excluded.winner_seat,
    winner_name = excluded.winner_name,
    human_won = excluded.human_won,
    void = excluded.void,
    results_json = excluded.results_json,
    log_json = excluded.log_json
`, userID, round.SessionID, int64(round.GameID), playedAtMs, round.Seats, round.WinnerSeat,
		round.WinnerName, boolToInt(round.HumanWon), boolToInt(round.Void),
		string(resultsRaw), string(logRaw), nowMs)
	if err != nil {
		log.Printf("[History] record round failed: user=%d session=%s game=%d err=%v", userID, round.SessionID, round.GameID, err)
		return
	}

	if s.recentLimit > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM round_history
WHERE user_id = ?
  AND id IN (
      SELECT id
      FROM round_history
      WHERE user_id = ?
      ORDER BY played_at_ms DESC, id DESC
      LIMIT -1 OFFSET ?
  )
`, userID, userID, s.recentLimit)
		if err != nil {
			log.Printf("[History] trim round history failed: user=%d err=%v", userID, err)
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("[History] commit round failed: user=%d session=%s err=%v", userID, round.SessionID, err)
	}
}

func (s *SQLiteService) ListRecent(ctx context.Context, userID uint64, limit int) ([]Round, error) {
	if userID == 0 {
		return []Round{}, nil
	}
	limit = clampListLimit(limit)
	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT session_id, game_id, played_at_ms, seats, winner_seat, winner_name,
       human_won, void, results_json, log_json
FROM round_history
WHERE user_id = ?
ORDER BY played_at_ms DESC, id DESC
LIMIT ?
`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rounds := make([]Round, 0, limit)
	for rows.Next() {
		var r Round
		var gameID int64
		var playedAtMs int64
		var humanWon, void int64
		var resultsRaw, logRaw []byte
		if err := rows.Scan(&r.SessionID, &gameID, &playedAtMs, &r.Seats, &r.WinnerSeat,
			&r.WinnerName, &humanWon, &void, &resultsRaw, &logRaw); err != nil {
			return nil, err
		}
		r.GameID = uint64(gameID)
		r.PlayedAt = time.UnixMilli(playedAtMs).UTC()
		r.HumanWon = humanWon == 1
		r.Void = void == 1
		if len(resultsRaw) > 0 {
			_ = json.Unmarshal(resultsRaw, &r.Results)
		}
		if r.Results == nil {
			r.Results = []SeatResult{}
		}
		if len(logRaw) > 0 {
			_ = json.Unmarshal(logRaw, &r.Log)
		}
		rounds = append(rounds, r)
	}
	return rounds, rows.Err()
}

func ensureSQLiteHistorySchema(ctx context.Context, db *sql.DB) error {
	statements := []string{
		`
CREATE TABLE IF NOT EXISTS round_history (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    user_id INTEGER NOT NULL,
    session_id TEXT NOT NULL,
    game_id INTEGER NOT NULL,
    played_at_ms INTEGER NOT NULL,
    seats INTEGER NOT NULL,
    winner_seat INTEGER NOT NULL,
    winner_name TEXT NOT NULL DEFAULT '',
    human_won INTEGER NOT NULL DEFAULT 0,
    void INTEGER NOT NULL DEFAULT 0,
    results_json TEXT NOT NULL DEFAULT '[]',
    log_json TEXT NOT NULL DEFAULT '[]',
    created_at_ms INTEGER NOT NULL,
    UNIQUE (user_id, session_id, game_id)
)`,
		`CREATE INDEX IF NOT EXISTS idx_round_history_recent ON round_history(user_id, played_at_ms DESC)`,
	}

	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func historyLocalDatabasePathFromEnv() (string, error) {
	candidates := []string{
		strings.TrimSpace(os.Getenv("HISTORY_LOCAL_DATABASE_PATH")),
		strings.TrimSpace(os.Getenv("LOCAL_DATABASE_PATH")),
	}
	for _, candidate := range candidates {
		if candidate != "" {
			return filepath.Clean(candidate), nil
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userConfigDir, "Seventeen", defaultLocalDBName), nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
