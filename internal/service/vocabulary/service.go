// Package vocabulary manages each reader's saved-word list. The whole
// document is read and rewritten on every change, so writes are serialized
// within the process.
package vocabulary

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

type documentStore interface {
	Load(ctx context.Context) (domain.VocabularyDocument, error)
	Save(ctx context.Context, doc domain.VocabularyDocument) error
}

// Service provides vocabulary operations.
type Service struct {
	store documentStore
	log   *slog.Logger
	now   func() time.Time

	// mu guards the read-modify-write cycle on the document.
	mu sync.Mutex
}

// NewService creates a new vocabulary service.
func NewService(log *slog.Logger, store documentStore) *Service {
	return &Service{
		store: store,
		log:   log.With("service", "vocabulary"),
		now:   time.Now,
	}
}
