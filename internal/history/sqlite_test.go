package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteService(t *testing.T) *SQLiteService {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history_test.db")
	s, err := NewSQLiteService(dbPath)
	if err != nil {
		t.Fatalf("open sqlite history: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRound(gameID uint64) Round {
	return Round{
		SessionID:  "session-1",
		GameID:     gameID,
		PlayedAt:   time.Now().UTC(),
		Seats:      3,
		WinnerSeat: 0,
		WinnerName: "You",
		HumanWon:   true,
		Results: []SeatResult{
			{Seat: 0, Name: "You", Human: true, Status: "winner", Total: 17},
			{Seat: 1, Name: "Alex", Status: "eliminated", Total: 21},
			{Seat: 2, Name: "Morgan", Status: "holding", Total: 14},
		},
		Log: []string{"Game started!", "You won with exactly 17!"},
	}
}

func TestRecordAndListRounds(t *testing.T) {
	s := newTestSQLiteService(t)
	const userID = 42

	s.RecordRound(userID, sampleRound(1))
	s.RecordRound(userID, sampleRound(2))

	rounds, err := s.ListRecent(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}

	r := rounds[0]
	if r.SessionID != "session-1" || !r.HumanWon || r.WinnerName != "You" {
		t.Fatalf("unexpected round: %+v", r)
	}
	if len(r.Results) != 3 {
		t.Fatalf("expected 3 seat results, got %d", len(r.Results))
	}
	if r.Results[1].Name != "Alex" || r.Results[1].Status != "eliminated" {
		t.Fatalf("unexpected seat result: %+v", r.Results[1])
	}
}

func TestRecordRoundIsIdempotentPerGame(t *testing.T) {
	s := newTestSQLiteService(t)
	const userID = 42

	round := sampleRound(1)
	s.RecordRound(userID, round)
	round.WinnerName = "Morgan"
	round.HumanWon = false
	s.RecordRound(userID, round)

	rounds, err := s.ListRecent(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round after upsert, got %d", len(rounds))
	}
	if rounds[0].WinnerName != "Morgan" || rounds[0].HumanWon {
		t.Fatalf("expected upsert to replace round, got %+v", rounds[0])
	}
}

func TestListRecentIgnoresOtherUsers(t *testing.T) {
	s := newTestSQLiteService(t)

	s.RecordRound(1, sampleRound(1))
	s.RecordRound(2, sampleRound(1))

	rounds, err := s.ListRecent(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("expected 1 round for user 1, got %d", len(rounds))
	}
}

func TestRecentLimitTrimsOldRounds(t *testing.T) {
	s := newTestSQLiteService(t)
	s.recentLimit = 3
	const userID = 7

	for i := 1; i <= 5; i++ {
		round := sampleRound(uint64(i))
		round.SessionID = fmt.Sprintf("session-%d", i)
		round.PlayedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute)
		s.RecordRound(userID, round)
	}

	rounds, err := s.ListRecent(context.Background(), userID, 10)
	if err != nil {
		t.Fatalf("list recent: %v", err)
	}
	if len(rounds) != 3 {
		t.Fatalf("expected trim to 3 rounds, got %d", len(rounds))
	}
	if rounds[0].SessionID != "session-5" {
		t.Fatalf("expected newest round first, got %s", rounds[0].SessionID)
	}
}
