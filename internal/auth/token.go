package auth

import (
	"errors"
	"fmt"
	"time"

	"myapp_backend/internal/config"
	"myapp_backend/internal/shared"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenIssuer = "myapp"

// jwtTokenService signs session tokens with HS256.
type jwtTokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates the session token issuer from SESSION_SECRET and SESSION_TTL_HOURS.
func NewTokenService(cfg *config.Config) shared.TokenService {
	return &jwtTokenService{
		secret: []byte(cfg.SessionSecret),
		ttl:    cfg.SessionTTL,
		now:    time.Now,
	}
}

// Issue signs a token carrying email and a fresh token id.
func (s *jwtTokenService) Issue(email string) (string, *shared.Claims, error) {
	now := s.now()
	claims := &shared.Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    tokenIssuer,
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Validate checks signature, algorithm, issuer and expiry.
func (s *jwtTokenService) Validate(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, err
	}
	if claims.Email == "" || claims.ID == "" {
		return nil, errors.New("token is missing email or id")
	}
	return claims, nil
}
