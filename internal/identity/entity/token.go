package entity

import "time"

// Claim names carried by session tokens.
const (
	ClaimUserID   = "id"
	ClaimUsername = "username"
	ClaimSubject  = "sub"
)

// SubjectRefresh marks a token as a refresh token. Access tokens carry no
// subject.
const SubjectRefresh = "refresh"

// RefreshToken is one login session. Token holds the digest of the value
// handed to the client, never the value itself.
type RefreshToken struct {
	ID        int64
	UserID    int64
	Token     string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ValidAt reports whether the session is still usable at now. The expiry
// instant itself is still valid.
func (r RefreshToken) ValidAt(now time.Time) bool {
	return !now.After(r.ExpiresAt)
}

// TokenPair is what a successful login hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
