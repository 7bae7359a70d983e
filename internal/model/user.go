package model

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskman/internal/errors"
)

var validate = validator.New()

// User represents a registered account.
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Name         string    `json:"name" gorm:"size:255;not null"`
	Age          int       `json:"age" gorm:"default:0"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Avatar       []byte    `json:"-" gorm:"type:mediumblob"`   // Served raw via its own endpoint
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations, never serialized to clients
	Tokens []SessionToken `json:"-" gorm:"foreignKey:UserID"`
	Tasks  []Task         `json:"-" gorm:"foreignKey:OwnerID"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Normalize trims and canonicalizes fields into their stored form.
func (u *User) Normalize() {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
}

// Validate checks invariants that must hold before any write.
func (u *User) Validate() error {
	if u.Name == "" {
		return errors.NewValidationError("name is required")
	}
	if u.Age < 0 {
		return errors.NewValidationError("age must be greater than or equal to 0")
	}
	if err := validate.Var(u.Email, "required,email"); err != nil {
		return errors.NewValidationError("email is invalid")
	}
	return nil
}

// ValidatePassword checks the plaintext password policy before hashing.
func ValidatePassword(password string) error {
	password = strings.TrimSpace(password)
	if len(password) < 6 {
		return errors.NewValidationError("password must be at least 6 characters")
	}
	if password == "password" {
		return errors.NewValidationError(`password cannot be "password"`)
	}
	return nil
}
