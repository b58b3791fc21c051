package ports

// TokenClaims is the identity embedded in a session token.
type TokenClaims struct {
	UserID string
	Role   string
}

// TokenService issues and verifies signed, time-limited session tokens.
type TokenService interface {
	Issue(userID, role string) (string, error)
	// Verify returns domain.ErrTokenExpired past expiry and
	// domain.ErrTokenMalformed on any structural or signature problem.
	Verify(token string) (*TokenClaims, error)
}
