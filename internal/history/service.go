// Package history persists finished rounds so a player can review past
// games. Storage backend follows the auth mode: memory runs without
// persistence, local uses SQLite, anything else expects Postgres.
package history

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultRecentLimit = 200
	defaultListLimit   = 20
	maxListLimit       = 100
)

var ErrNotFound = errors.New("not found")

// SeatResult captures one seat at the end of a round.
type SeatResult struct {
	Seat   int    `json:"seat"`
	Name   string `json:"name"`
	Human  bool   `json:"human"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

// Round is one finished game as stored and listed.
type Round struct {
	SessionID  string       `json:"session_id"`
	GameID     uint64       `json:"game_id"`
	PlayedAt   time.Time    `json:"played_at"`
	Seats      int          `json:"seats"`
	WinnerSeat int          `json:"winner_seat"`
	WinnerName string       `json:"winner_name,omitempty"`
	HumanWon   bool         `json:"human_won"`
	Void       bool         `json:"void"`
	Results    []SeatResult `json:"results"`
	Log        []string     `json:"log,omitempty"`
}

type Service interface {
	Close() error
	// RecordRound is fire-and-forget; storage failures are logged, never
	// surfaced to gameplay.
	RecordRound(userID uint64, round Round)
	ListRecent(ctx context.Context, userID uint64, limit int) ([]Round, error)
}

type noopService struct{}

func (n *noopService) Close() error { return nil }

func (n *noopService) RecordRound(_ uint64, _ Round) {}

func (n *noopService) ListRecent(_ context.Context, _ uint64, _ int) ([]Round, error) {
	return []Round{}, nil
}

// NewServiceFromEnv picks a backend. HISTORY_MODE overrides; otherwise the
// backend follows the auth mode so a memory deployment stays stateless.
func NewServiceFromEnv(authMode string) (Service, string, error) {
	mode := strings.ToLower(strings.TrimSpace(authMode))
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("HISTORY_MODE"))); v != "" {
		mode = v
	}
	if mode == "" || mode == "memory" {
		return &noopService{}, "memory-noop", nil
	}
	if mode == "local" || mode == "sqlite" {
		service, err := NewSQLiteServiceFromEnv()
		if err != nil {
			return nil, "", err
		}
		return service, "sqlite", nil
	}

	service, err := NewPostgresServiceFromEnv()
	if err != nil {
		return nil, "", err
	}
	return service, "postgres", nil
}

func clampListLimit(limit int) int {
	if limit <= 0 || limit > maxListLimit {
		return defaultListLimit
	}
	return limit
}

func recentLimitFromEnv() int {
	v := strings.TrimSpace(os.Getenv("HISTORY_RECENT_LIMIT"))
	if v == "" {
		return defaultRecentLimit
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return defaultRecentLimit
	}
	return n
}
