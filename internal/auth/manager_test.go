package auth

import (
	"errors"
	"testing"
)

func TestRegisterAndLogin(t *testing.T) {
	m := NewManager()

	accountID, token, err := m.Register("morgan_17", "secret12")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if accountID == 0 {
		t.Fatalf("expected account id")
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	resolvedID, username, ok := m.ResolveSession(token)
	if !ok {
		t.Fatalf("expected valid session")
	}
	if resolvedID != accountID {
		t.Fatalf("expected same account id, got %d and %d", accountID, resolvedID)
	}
	if username != "morgan_17" {
		t.Fatalf("expected username morgan_17, got %s", username)
	}

	loginID, loginToken, err := m.Login("morgan_17", "secret12")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loginID != accountID {
		t.Fatalf("expected same account id after login")
	}
	if loginToken == "" {
		t.Fatalf("expected login token")
	}
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	m := NewManager()
	if _, _, err := m.Register("morgan_17", "secret12"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := m.Register("Morgan_17", "secret12"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestRegisterRejectsBadInput(t *testing.T) {
	m := NewManager()
	if _, _, err := m.Register("x", "secret12"); !errors.Is(err, ErrInvalidUsername) {
		t.Fatalf("expected ErrInvalidUsername, got %v", err)
	}
	if _, _, err := m.Register("morgan_17", "short"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	m := NewManager()
	if _, _, err := m.Register("morgan_17", "secret12"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := m.Login("morgan_17", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	m := NewManager()
	_, token, err := m.Register("morgan_17", "secret12")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	m.Logout(token)
	if _, _, ok := m.ResolveSession(token); ok {
		t.Fatalf("expected logged out token to be invalid")
	}
}

func TestResolveOrCreateGuest_ReusesValidToken(t *testing.T) {
	m := NewManager()
	accountID1, token, reused := m.ResolveOrCreateGuest("")
	if accountID1 == 0 {
		t.Fatalf("expected non-zero account id")
	}
	if token == "" {
		t.Fatalf("expected session token")
	}
	if reused {
		t.Fatalf("new guest should not be marked reused")
	}

	accountID2, token2, reused2 := m.ResolveOrCreateGuest(token)
	if !reused2 {
		t.Fatalf("expected reused account for valid token")
	}
	if accountID1 != accountID2 {
		t.Fatalf("expected same account id, got %d and %d", accountID1, accountID2)
	}
	if token2 != token {
		t.Fatalf("expected same token for valid session")
	}
}

func TestResolveOrCreateGuest_CreatesNewForUnknownToken(t *testing.T) {
	m := NewManager()
	accountID1, _, _ := m.ResolveOrCreateGuest("")
	accountID2, token2, reused2 := m.ResolveOrCreateGuest("invalid-token")
	if reused2 {
		t.Fatalf("unknown token should not be reused")
	}
	if token2 == "" {
		t.Fatalf("expected new session token")
	}
	if accountID1 == accountID2 {
		t.Fatalf("expected a different account id for invalid token")
	}
}
