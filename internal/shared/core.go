package shared

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated caller of a request. Email comes from the
// session token; UserID is attached by resolving that email against the
// credential store and stays empty when no user matches.
type Session struct {
	Email     string
	UserID    string
	TokenID   string
	ExpiresAt time.Time
}

// HasUser reports whether the session was tied to a stored user.
func (s *Session) HasUser() bool {
	return s != nil && s.UserID != ""
}

// Claims is the payload of a signed session token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates session tokens.
type TokenService interface {
	Issue(email string) (token string, claims *Claims, err error)
	Validate(tokenString string) (*Claims, error)
}
