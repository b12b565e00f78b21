package vocabulary

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

const (
	maxTermLength       = 200
	maxDefinitionLength = 10000
)

// SaveInput holds the parameters for saving a word.
type SaveInput struct {
	UserID     uuid.UUID
	Term       string
	Definition string
}

// Validate checks all fields and collects all errors.
func (i SaveInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}

	term := strings.TrimSpace(i.Term)
	if term == "" {
		errs = append(errs, domain.FieldError{Field: "term", Message: "required"})
	}
	if len(term) > maxTermLength {
		errs = append(errs, domain.FieldError{Field: "term", Message: "max 200 characters"})
	}

	if len(strings.TrimSpace(i.Definition)) > maxDefinitionLength {
		errs = append(errs, domain.FieldError{Field: "definition", Message: "max 10000 characters"})
	}

	return domain.NewValidationErrors(errs)
}

// RemoveInput holds the parameters for removing a word.
type RemoveInput struct {
	UserID uuid.UUID
	Term   string
}

// Validate checks all fields and collects all errors.
func (i RemoveInput) Validate() error {
	var errs []domain.FieldError
	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if strings.TrimSpace(i.Term) == "" {
		errs = append(errs, domain.FieldError{Field: "term", Message: "required"})
	}
	return domain.NewValidationErrors(errs)
}
