package profile

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"myapp_backend/internal/common"

	"go.uber.org/zap"
)

// dobLayouts are tried in order when parsing a submitted dob.
var dobLayouts = []string{"2006-01-02", time.RFC3339}

// AvatarStore is the part of filestorage the profile service needs.
type AvatarStore interface {
	SaveUploadedFile(fileHeader *multipart.FileHeader) (string, error)
	DeleteFile(publicOrName string) error
}

// Service reads and saves the profile of the signed-in user.
type Service interface {
	// GetProfile returns nil, nil when the user has not saved a profile yet.
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	SaveProfile(ctx context.Context, userID string, fields map[string]string, avatar *multipart.FileHeader) (*Profile, error)
}

// ServiceImplementation implements Service.
type ServiceImplementation struct {
	repo    Repository
	avatars AvatarStore
	logger  *zap.Logger
	now     func() time.Time
}

var _ Service = (*ServiceImplementation)(nil)

func NewService(repo Repository, avatars AvatarStore, logger *zap.Logger) *ServiceImplementation {
	return &ServiceImplementation{
		repo:    repo,
		avatars: avatars,
		logger:  logger.Named("ProfileService"),
		now:     time.Now,
	}
}

func (s *ServiceImplementation) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}
	p, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile %q: %w", userID, err)
	}
	return p, nil
}

func (s *ServiceImplementation) SaveProfile(ctx context.Context, userID string, fields map[string]string, avatar *multipart.FileHeader) (*Profile, error) {
	if userID == "" {
		return nil, common.ErrUnauthorized
	}

	upd := &Update{
		UserID:    userID,
		Fields:    make(map[string]string, len(fields)),
		UpdatedAt: s.now().UTC(),
	}
	for name, value := range fields {
		switch {
		case name == FieldDOB:
			upd.SetDOB = true
			upd.DOB = ParseDOB(value)
			if upd.DOB == nil && strings.TrimSpace(value) != "" {
				s.logger.Debug("Storing unparseable dob as null", zap.String("userId", userID), zap.String("dob", value))
			}
		case IsTextField(name):
			upd.Fields[name] = value
		}
	}

	if avatar != nil && avatar.Size > 0 {
		publicPath, err := s.avatars.SaveUploadedFile(avatar)
		if err != nil {
			return nil, fmt.Errorf("store avatar: %w", err)
		}
		upd.Avatar = publicPath
	}

	p, err := s.repo.Upsert(ctx, upd)
	if err != nil {
		if upd.Avatar != "" {
			if delErr := s.avatars.DeleteFile(upd.Avatar); delErr != nil {
				s.logger.Error("Failed to remove avatar after failed save", zap.String("avatar", upd.Avatar), zap.Error(delErr))
			}
		}
		return nil, fmt.Errorf("save profile %q: %w", userID, err)
	}

	s.logger.Info("Profile saved",
		zap.String("userId", userID),
		zap.Int("fields", len(upd.Fields)),
		zap.Bool("avatar", upd.Avatar != ""),
	)
	return p, nil
}

// ParseDOB accepts YYYY-MM-DD or RFC 3339. Anything else, including an
// empty value, yields nil.
func ParseDOB(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t
		}
	}
	return nil
}
