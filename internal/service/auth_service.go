package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskman/internal/auth"
	"taskman/internal/errors"
	"taskman/internal/mail"
	"taskman/internal/model"
	"taskman/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and the session token lifecycle.
type AuthService interface {
	Register(ctx context.Context, name string, age int, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, userID uuid.UUID, token string) error
	LogoutAll(ctx context.Context, userID uuid.UUID) error
}

type authService struct {
	users      repository.UserRepository
	tokens     repository.TokenRepository
	jwtService *auth.JWTService
	mailer     mail.Mailer
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, tokens repository.TokenRepository, jwtService *auth.JWTService, mailer mail.Mailer) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
		mailer:     mailer,
	}
}

// Register validates and persists a new user, sends the welcome mail, and
// issues the first session token.
func (s *authService) Register(ctx context.Context, name string, age int, email, password string) (*model.User, string, error) {
	if err := model.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Name:         name,
		Age:          age,
		Email:        email,
		PasswordHash: string(hashed),
	}
	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, "", err
	}

	if err := s.users.Create(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, "", errors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	dispatch(func() error { return s.mailer.SendWelcome(user.Email, user.Name) }, "welcome mail")

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login authenticates by email and password and issues a session token. The
// error is the same whether the email is unknown or the password is wrong.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, "", errors.ErrUnableToLogin
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", errors.ErrUnableToLogin
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the one token the current session presented.
func (s *authService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	if err := s.tokens.Remove(ctx, userID, token); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// LogoutAll clears the user's entire token collection, logging out every device.
func (s *authService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokens.RemoveAll(ctx, userID); err != nil {
		return fmt.Errorf("revoke tokens: %w", err)
	}
	return nil
}

// issueToken signs a token for the user and appends it to the live collection.
func (s *authService) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.jwtService.GenerateToken(userID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	if err := s.tokens.Add(ctx, &model.SessionToken{UserID: userID, Token: token}); err != nil {
		return "", fmt.Errorf("store token: %w", err)
	}
	return token, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// dispatch runs a notification in the background. Failures are logged and
// never surfaced to the request that triggered them.
func dispatch(send func() error, what string) {
	go func() {
		if err := send(); err != nil {
			log.Printf("send %s: %v", what, err)
		}
	}()
}
