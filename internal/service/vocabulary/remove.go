package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
)

// Remove deletes a word from the user's list. Removing a term that is not
// there is a no-op.
func (s *Service) Remove(ctx context.Context, in RemoveInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	term := strings.TrimSpace(in.Term)
	userKey := in.UserID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load vocabulary: %w", err)
	}

	items := doc[userKey]
	idx := indexOf(items, term)
	if idx < 0 {
		return nil
	}
	if items = slices.Delete(items, idx, idx+1); len(items) == 0 {
		delete(doc, userKey)
	} else {
		doc[userKey] = items
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return fmt.Errorf("save vocabulary: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary item removed",
		slog.String("user_id", userKey),
		slog.String("term", term),
	)
	return nil
}
