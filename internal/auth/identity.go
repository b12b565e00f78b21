package auth

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// Identity is the caller described by a verified access token.
type Identity struct {
	UserID uuid.UUID
	Role   domain.UserRole
	Email  string
}
