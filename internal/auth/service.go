package auth

// Service is the account/session contract consumed by the gateway and the
// HTTP handlers.
type Service interface {
	Register(username, password string) (accountID uint64, sessionToken string, err error)
	Login(username, password string) (accountID uint64, sessionToken string, err error)
	ResolveSession(token string) (accountID uint64, username string, ok bool)
	// ResolveOrCreateGuest returns the account behind token when the token
	// is still valid, otherwise mints a guest account with a fresh token.
	ResolveOrCreateGuest(token string) (accountID uint64, sessionToken string, reused bool)
	Logout(token string)
	Close() error
}
