package vocabulary

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// List returns the user's items in the order they were first saved. Unknown
// users get an empty, non-nil slice.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyItem, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user_id", "required")
	}

	s.mu.Lock()
	doc, err := s.store.Load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}

	items := doc[userID.String()]
	out := make([]domain.VocabularyItem, len(items))
	copy(out, items)
	return out, nil
}
