package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskman/internal/model"
)

// TokenRepository manages the live session token collection. Membership in
// this table is what makes a signed token valid; deleting a row revokes it
// immediately.
type TokenRepository interface {
	Add(ctx context.Context, token *model.SessionToken) error
	FindUser(ctx context.Context, token string) (*model.User, error)
	Remove(ctx context.Context, userID uuid.UUID, token string) error
	RemoveAll(ctx context.Context, userID uuid.UUID) error
}

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository builds a GORM-backed token repository.
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Add(ctx context.Context, token *model.SessionToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

// FindUser resolves the holder of a live token. Returns
// gorm.ErrRecordNotFound when the exact token string is not in any user's
// collection, which is how revocation takes effect on the next request.
func (r *tokenRepository) FindUser(ctx context.Context, token string) (*model.User, error) {
	var session model.SessionToken
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	var user model.User
	if err := r.db.WithContext(ctx).Where("id = ?", session.UserID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *tokenRepository) Remove(ctx context.Context, userID uuid.UUID, token string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.SessionToken{}).Error
}

func (r *tokenRepository) RemoveAll(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.SessionToken{}).Error
}
