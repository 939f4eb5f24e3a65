package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRef is a user reference resolved to its display name. Name is nil when
// the referenced user no longer exists.
type UserRef struct {
	ID   uuid.UUID
	Name *string
}
