package lookup

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

const maxTermLength = 200

// LookupInput describes one word lookup made by a reader.
type LookupInput struct {
	UserID          uuid.UUID
	BookID          string
	SectionID       string
	Term            string
	DefinitionFound bool
}

// Validate checks all fields and collects all errors.
func (i LookupInput) Validate() error {
	var errs []domain.FieldError

	if i.UserID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "user_id", Message: "required"})
	}
	if i.BookID == "" {
		errs = append(errs, domain.FieldError{Field: "book_id", Message: "required"})
	}
	if i.Term == "" {
		errs = append(errs, domain.FieldError{Field: "term", Message: "required"})
	} else if len(i.Term) > maxTermLength {
		errs = append(errs, domain.FieldError{Field: "term", Message: "too long (max 200)"})
	}

	return domain.NewValidationErrors(errs)
}
