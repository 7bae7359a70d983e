package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskman/internal/errors"
	"taskman/internal/mail"
	"taskman/internal/model"
	"taskman/internal/repository"
)

// allowedUpdates is the patch allow-list for profile updates.
var allowedUpdates = map[string]bool{
	"name":     true,
	"age":      true,
	"email":    true,
	"password": true,
}

// UserService handles profile reads, allow-listed updates, and account
// deletion with its cascade.
type UserService interface {
	Get(ctx context.Context, user *model.User) *model.User
	Update(ctx context.Context, user *model.User, updates map[string]interface{}) (*model.User, error)
	Delete(ctx context.Context, user *model.User) error
}

type userService struct {
	users  repository.UserRepository
	tokens repository.TokenRepository
	tasks  repository.TaskRepository
	mailer mail.Mailer
}

// NewUserService creates a new user service.
func NewUserService(users repository.UserRepository, tokens repository.TokenRepository, tasks repository.TaskRepository, mailer mail.Mailer) UserService {
	return &userService{
		users:  users,
		tokens: tokens,
		tasks:  tasks,
		mailer: mailer,
	}
}

// Get returns the acting user as resolved by the session middleware.
func (s *userService) Get(ctx context.Context, user *model.User) *model.User {
	return user
}

// Update applies an allow-listed patch to the user. A single unknown field
// rejects the whole patch before any mutation. A password change is re-hashed
// before persistence.
func (s *userService) Update(ctx context.Context, user *model.User, updates map[string]interface{}) (*model.User, error) {
	for field := range updates {
		if !allowedUpdates[field] {
			return nil, errors.ErrInvalidUpdates
		}
	}

	for field, value := range updates {
		switch field {
		case "name":
			name, ok := value.(string)
			if !ok {
				return nil, errors.NewValidationError("name must be a string")
			}
			user.Name = name
		case "age":
			// JSON numbers decode as float64
			age, ok := value.(float64)
			if !ok {
				return nil, errors.NewValidationError("age must be a number")
			}
			user.Age = int(age)
		case "email":
			email, ok := value.(string)
			if !ok {
				return nil, errors.NewValidationError("email must be a string")
			}
			user.Email = email
		case "password":
			password, ok := value.(string)
			if !ok {
				return nil, errors.NewValidationError("password must be a string")
			}
			if err := model.ValidatePassword(password); err != nil {
				return nil, err
			}
			hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
			if err != nil {
				return nil, fmt.Errorf("hash password: %w", err)
			}
			user.PasswordHash = string(hashed)
		}
	}

	user.Normalize()
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, user); err != nil {
		if err == gorm.ErrDuplicatedKey {
			return nil, errors.ErrEmailTaken
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// Delete removes the user and cascades to every owned resource: tasks first,
// then the live token collection, then the user row. The cascade is best
// effort; no wrapping transaction is held across the steps. The cancellation
// mail is dispatched after the row is gone.
func (s *userService) Delete(ctx context.Context, user *model.User) error {
	if err := s.tasks.DeleteByOwner(ctx, user.ID); err != nil {
		return fmt.Errorf("cascade tasks: %w", err)
	}
	if err := s.tokens.RemoveAll(ctx, user.ID); err != nil {
		return fmt.Errorf("cascade tokens: %w", err)
	}
	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	dispatch(func() error { return s.mailer.SendCancellation(user.Email, user.Name) }, "cancellation mail")
	return nil
}
