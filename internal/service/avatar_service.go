package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"taskman/internal/cache"
	"taskman/internal/errors"
	"taskman/internal/model"
	"taskman/internal/repository"
)

const (
	// maxAvatarBytes is the upload size cap, checked before any decoding.
	maxAvatarBytes = 1_000_000
	// avatarSize is the side of the square every stored avatar is normalized to.
	avatarSize     = 250
	avatarCacheTTL = 5 * time.Minute
)

// allowedAvatarExts are the accepted upload extensions.
var allowedAvatarExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

// AvatarService validates, normalizes, and serves profile pictures. Stored
// avatars are always 250x250 PNG regardless of the uploaded format.
type AvatarService interface {
	Upload(ctx context.Context, user *model.User, filename string, data []byte) error
	Remove(ctx context.Context, user *model.User) error
	Fetch(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type avatarService struct {
	users repository.UserRepository
	cache *cache.Client
}

// NewAvatarService creates a new avatar service.
func NewAvatarService(users repository.UserRepository, cache *cache.Client) AvatarService {
	return &avatarService{users: users, cache: cache}
}

func (s *avatarService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("avatar:%s", id.String())
}

// Upload validates the file, re-encodes it as a normalized PNG, and stores it
// on the user record, replacing any prior avatar.
func (s *avatarService) Upload(ctx context.Context, user *model.User, filename string, data []byte) error {
	if len(data) > maxAvatarBytes {
		return errors.NewValidationError("file too large")
	}
	if !allowedAvatarExts[strings.ToLower(filepath.Ext(filename))] {
		return errors.NewValidationError("file should be an image")
	}

	normalized, err := normalizeAvatar(data)
	if err != nil {
		return err
	}

	user.Avatar = normalized
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("save avatar: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return nil
}

// Remove clears the user's avatar. Removing an absent avatar is an error.
func (s *avatarService) Remove(ctx context.Context, user *model.User) error {
	if len(user.Avatar) == 0 {
		return errors.NewValidationError("no avatar to delete")
	}
	user.Avatar = nil
	if err := s.users.Save(ctx, user); err != nil {
		return fmt.Errorf("clear avatar: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(user.ID))
	return nil
}

// Fetch returns the stored PNG bytes for any user id. Avatars are public;
// responses are cached and the cache is invalidated on every mutation.
func (s *avatarService) Fetch(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		return data, nil
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errors.ErrAvatarNotFound
	}
	if len(user.Avatar) == 0 {
		return nil, errors.ErrAvatarNotFound
	}

	_ = s.cache.Set(ctx, s.cacheKey(id), user.Avatar, avatarCacheTTL)
	return user.Avatar, nil
}

// normalizeAvatar decodes an uploaded image and re-encodes it as a 250x250
// PNG, center-cropping to fill the square.
func normalizeAvatar(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.ErrImageDecode
	}

	img = imaging.Fill(img, avatarSize, avatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, errors.ErrImageDecode
	}
	return buf.Bytes(), nil
}
