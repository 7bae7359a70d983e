package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskman/internal/errors"
)

// Task is a resource owned by a user. Tasks hold a back-reference to their
// owner; the owner record never carries a denormalized task list.
type Task struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Description string    `json:"description" gorm:"size:1024;not null"`
	Completed   bool      `json:"completed" gorm:"default:false"`
	OwnerID     uuid.UUID `json:"owner_id" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Validate checks invariants that must hold before any write.
func (t *Task) Validate() error {
	t.Description = strings.TrimSpace(t.Description)
	if t.Description == "" {
		return errors.NewValidationError("description is required")
	}
	return nil
}
