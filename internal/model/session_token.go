package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionToken is one entry in a user's live token collection. A user may hold
// several at once (one per device); revoking a session deletes its row.
type SessionToken struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	UserID    uuid.UUID `json:"-" gorm:"type:char(36);not null;index"`
	Token     string    `json:"-" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"-"`
}
