package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"github.com/founderflow/founderflow/internal/core/domain"
	"github.com/founderflow/founderflow/internal/core/ports"
)

// ProfileService manages the caller's own profile and avatar.
type ProfileService struct {
	profiles ports.ProfileRepository
	avatars  ports.AvatarStore
	log      zerolog.Logger
}

func NewProfileService(profiles ports.ProfileRepository, avatars ports.AvatarStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{profiles: profiles, avatars: avatars, log: log}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.profiles.FindByID(ctx, userID)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in ports.UpdateProfileInput) error {
	if err := s.profiles.UpdateFullName(ctx, userID, in.FullName); err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("profile updated")
	return nil
}

// UploadAvatar stores the image under {userID}/{random}.{ext} and persists
// the resulting public URL on the profile.
func (s *ProfileService) UploadAvatar(ctx context.Context, userID, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("upload avatar: empty file")
	}

	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ext == "" {
		ext = "png"
	}
	key := fmt.Sprintf("%s/%s.%s", userID, randomToken(), ext)

	url, err := s.avatars.Save(ctx, key, data)
	if err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	if err := s.profiles.UpdateAvatarURL(ctx, userID, url); err != nil {
		return "", fmt.Errorf("upload avatar: %w", err)
	}

	s.log.Info().Str("user_id", userID).Str("key", key).Msg("avatar uploaded")
	return url, nil
}

func randomToken() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "avatar"
	}
	return fmt.Sprintf("%x", b)
}
