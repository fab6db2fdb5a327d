package auth

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLiteManager(t *testing.T) *SQLiteManager {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "auth_test.db")
	m, err := NewSQLiteManager(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("open sqlite manager: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestSQLiteRegisterLoginRoundTrip(t *testing.T) {
	m := newTestSQLiteManager(t)

	accountID, token, err := m.Register("casey_17", "secret12")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if accountID == 0 || token == "" {
		t.Fatalf("expected account id and token, got %d %q", accountID, token)
	}

	resolvedID, username, ok := m.ResolveSession(token)
	if !ok {
		t.Fatalf("expected valid session")
	}
	if resolvedID != accountID || username != "casey_17" {
		t.Fatalf("unexpected session identity: %d %q", resolvedID, username)
	}

	if _, _, err := m.Register("Casey_17", "secret12"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if _, _, err := m.Login("casey_17", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestSQLiteGuestSessionSurvivesReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "auth_test.db")

	m1, err := NewSQLiteManager(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("open sqlite manager: %v", err)
	}
	accountID, token, reused := m1.ResolveOrCreateGuest("")
	if reused || accountID == 0 || token == "" {
		t.Fatalf("expected fresh guest, got id=%d token=%q reused=%v", accountID, token, reused)
	}
	if err := m1.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	m2, err := NewSQLiteManager(dbPath, time.Hour)
	if err != nil {
		t.Fatalf("reopen sqlite manager: %v", err)
	}
	defer m2.Close()

	accountID2, token2, reused2 := m2.ResolveOrCreateGuest(token)
	if !reused2 {
		t.Fatalf("expected persisted token to be reused")
	}
	if accountID2 != accountID || token2 != token {
		t.Fatalf("expected same identity across reopen, got id=%d token=%q", accountID2, token2)
	}
}

func TestSQLiteLogoutRevokesToken(t *testing.T) {
	m := newTestSQLiteManager(t)

	_, token, err := m.Register("casey_17", "secret12")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	m.Logout(token)
	if _, _, ok := m.ResolveSession(token); ok {
		t.Fatalf("expected revoked token to be invalid")
	}
}
