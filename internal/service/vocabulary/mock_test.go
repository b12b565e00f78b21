package vocabulary

import (
	"context"
	"sync"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// memStore is an in-memory documentStore. It deep-copies on both sides so
// tests observe exactly what was persisted.
type memStore struct {
	mu       sync.Mutex
	doc      domain.VocabularyDocument
	saves    int
	LoadFunc func(ctx context.Context) (domain.VocabularyDocument, error)
	SaveFunc func(ctx context.Context, doc domain.VocabularyDocument) error
}

func (m *memStore) Load(ctx context.Context) (domain.VocabularyDocument, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return copyDoc(m.doc), nil
}

func (m *memStore) Save(ctx context.Context, doc domain.VocabularyDocument) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, doc)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc = copyDoc(doc)
	m.saves++
	return nil
}

func copyDoc(doc domain.VocabularyDocument) domain.VocabularyDocument {
	out := make(domain.VocabularyDocument, len(doc))
	for k, v := range doc {
		out[k] = append([]domain.VocabularyItem(nil), v...)
	}
	return out
}
