package auth

import (
	"testing"
	"time"

	"myapp_backend/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(secret string, ttl time.Duration) *jwtTokenService {
	return NewTokenService(&config.Config{SessionSecret: secret, SessionTTL: ttl}).(*jwtTokenService)
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	token, claims, err := svc.Issue("alice@abc.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@abc.com", got.Email)
	assert.Equal(t, claims.ID, got.ID)
}

func TestTokenService_UniqueIDs(t *testing.T) {
	svc := newTestTokenService("secret", time.Hour)

	_, a, err := svc.Issue("alice@abc.com")
	require.NoError(t, err)
	_, b, err := svc.Issue("alice@abc.com")
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTokenService_Expired(t *testing.T) {
	svc := newTestTokenService("secret", time.Minute)
	token, _, err := svc.Issue("alice@abc.com")
	require.NoError(t, err)

	svc.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	_, err = svc.Validate(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenService_WrongSecret(t *testing.T) {
	token, _, err := newTestTokenService("secret-a", time.Hour).Issue("alice@abc.com")
	require.NoError(t, err)

	_, err = newTestTokenService("secret-b", time.Hour).Validate(token)
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.MapClaims{"email": "alice@abc.com", "iss": tokenIssuer, "jti": "x", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestTokenService("secret", time.Hour).Validate(token)
	require.Error(t, err)
}

func TestTokenService_Garbage(t *testing.T) {
	_, err := newTestTokenService("secret", time.Hour).Validate("not-a-token")
	require.Error(t, err)
}
