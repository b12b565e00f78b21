package vocabulary

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// Save adds a word to the user's list. An existing item with the same term
// is replaced in place: its savedAt is kept and updatedAt is set.
func (s *Service) Save(ctx context.Context, in SaveInput) (domain.VocabularyItem, error) {
	if err := in.Validate(); err != nil {
		return domain.VocabularyItem{}, err
	}

	term := strings.TrimSpace(in.Term)
	definition := strings.TrimSpace(in.Definition)
	userKey := in.UserID.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.store.Load(ctx)
	if err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("load vocabulary: %w", err)
	}

	if doc == nil {
		doc = domain.VocabularyDocument{}
	}

	now := s.now().UTC()
	items := doc[userKey]

	var saved domain.VocabularyItem
	idx := indexOf(items, term)
	if idx >= 0 {
		items[idx].Definition = definition
		items[idx].UpdatedAt = &now
		saved = items[idx]
	} else {
		saved = domain.VocabularyItem{Term: term, Definition: definition, SavedAt: now}
		items = append(items, saved)
	}
	doc[userKey] = items

	if err := s.store.Save(ctx, doc); err != nil {
		return domain.VocabularyItem{}, fmt.Errorf("save vocabulary: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary item saved",
		slog.String("user_id", userKey),
		slog.String("term", term),
		slog.Bool("updated", idx >= 0),
	)

	return saved, nil
}

// indexOf returns the position of term in items, or -1.
func indexOf(items []domain.VocabularyItem, term string) int {
	for i, it := range items {
		if it.Term == term {
			return i
		}
	}
	return -1
}
