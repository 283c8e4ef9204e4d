package service

// TokenService abstracts issuing and verifying bearer tokens.
//
// Tokens are stateless: a token is valid until its embedded expiry and there
// is no revocation.
type TokenService interface {
	// Issue creates a signed token carrying the user id as subject.
	Issue(userID int64) (string, error)

	// Verify checks signature and expiry atomically and returns the subject
	// id. ok is false when the token could not be verified for any reason;
	// callers must branch on it explicitly.
	Verify(token string) (userID int64, ok bool)
}
