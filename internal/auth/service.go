package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"myapp_backend/internal/common"
	"myapp_backend/internal/config"
	"myapp_backend/internal/shared"
	"myapp_backend/internal/user"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the user does not exist so that an
// unknown userId costs the same as a wrong password.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// maxPasswordBytes is the bcrypt input limit. It counts bytes, not runes.
const maxPasswordBytes = 72

var (
	errInvalidCredentials = common.ErrUnauthorized.WithMessage("Invalid credentials")
	errPasswordTooLong    = common.ErrBadRequest.WithMessage("Password must be at most 72 bytes")
)

// Service is the authentication service.
type Service interface {
	Register(ctx context.Context, userID, password string) (*user.User, error)
	Login(ctx context.Context, userID, password string) (*LoginResult, error)
	// Authenticate turns a session token into a resolved session.
	Authenticate(ctx context.Context, token string) (*shared.Session, error)
	ResolveSession(ctx context.Context, session *shared.Session) error
	Logout(ctx context.Context, session *shared.Session) error
}

// LoginResult is a freshly issued session.
type LoginResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	users       user.Repository
	tokens      shared.TokenService
	blocklist   TokenBlocklistService
	emailDomain string
	hashCost    int
	logger      *zap.Logger
}

var _ Service = (*ServiceImplementation)(nil)

func NewService(
	users user.Repository,
	tokens shared.TokenService,
	blocklist TokenBlocklistService,
	cfg *config.Config,
	logger *zap.Logger,
) *ServiceImplementation {
	return &ServiceImplementation{
		users:       users,
		tokens:      tokens,
		blocklist:   blocklist,
		emailDomain: cfg.RegistrationEmailDomain,
		hashCost:    bcrypt.DefaultCost,
		logger:      logger.Named("AuthService"),
	}
}

// DeriveEmail builds the email stored for a new user.
func DeriveEmail(userID, domain string) string {
	return fmt.Sprintf("%s@%s", userID, domain)
}

func (s *ServiceImplementation) Register(ctx context.Context, userID, password string) (*user.User, error) {
	if userID == "" || password == "" {
		return nil, common.ErrMissingFields
	}
	if len(password) > maxPasswordBytes {
		return nil, errPasswordTooLong
	}

	_, err := s.users.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		return nil, common.ErrConflict.WithMessage("User already exists")
	case !errors.Is(err, common.ErrNotFound):
		return nil, fmt.Errorf("lookup user %q: %w", userID, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		UserID:       userID,
		PasswordHash: string(hash),
		Email:        DeriveEmail(userID, s.emailDomain),
		CreatedAt:    time.Now().UTC(),
	}
	// the unique index still catches a concurrent registration of the same userId
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("User registered", zap.String("userId", userID))
	return u, nil
}

func (s *ServiceImplementation) Login(ctx context.Context, userID, password string) (*LoginResult, error) {
	if userID == "" || password == "" {
		return nil, common.ErrMissingFields
	}
	if len(password) > maxPasswordBytes {
		return nil, errPasswordTooLong
	}

	u, err := s.users.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
			s.logger.Debug("Login for unknown user", zap.String("userId", userID))
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user %q: %w", userID, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug("Login with wrong password", zap.String("userId", userID))
		return nil, errInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in", zap.String("userId", userID))
	return &LoginResult{User: u, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (s *ServiceImplementation) Authenticate(ctx context.Context, token string) (*shared.Session, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		s.logger.Debug("Session token rejected", zap.Error(err))
		return nil, common.ErrUnauthorized.WithDetails("Invalid or expired session.")
	}

	revoked, err := s.blocklist.IsBlocklisted(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, common.ErrUnauthorized.WithDetails("Session has been signed out.")
	}

	session := &shared.Session{
		Email:     claims.Email,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.ResolveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ResolveSession attaches the userId of the user owning session.Email.
// When no user matches, the session is left without a userId.
func (s *ServiceImplementation) ResolveSession(ctx context.Context, session *shared.Session) error {
	if session == nil || strings.TrimSpace(session.Email) == "" {
		return nil
	}
	u, err := s.users.FindByEmail(ctx, session.Email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Warn("Session email does not match any user", zap.String("email", session.Email))
			return nil
		}
		return fmt.Errorf("resolve session: %w", err)
	}
	session.UserID = u.UserID
	return nil
}

func (s *ServiceImplementation) Logout(ctx context.Context, session *shared.Session) error {
	if session == nil || session.TokenID == "" {
		return common.ErrUnauthorized
	}
	if err := s.blocklist.AddToBlocklist(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return err
	}
	s.logger.Info("User logged out", zap.String("email", session.Email))
	return nil
}
