package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// UniqueBookID returns a book id that does not collide with other tests
// sharing the container.
func UniqueBookID() string {
	return "book-" + uuid.New().String()[:8]
}

// SeedBookDefinition inserts a book-scoped definition row and returns it.
// sectionID and chapterID may be empty for a book-wide definition.
func SeedBookDefinition(t *testing.T, pool *pgxpool.Pool, bookID, term, sectionID, chapterID, definition string) domain.BookDefinition {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	def := domain.BookDefinition{
		ID:             uuid.New(),
		BookID:         bookID,
		Term:           term,
		TermNormalized: domain.NormalizeText(term),
		SectionID:      optional(sectionID),
		ChapterID:      optional(chapterID),
		Definition:     definition,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO book_definitions (id, book_id, term, term_normalized, section_id, chapter_id, definition, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		def.ID, def.BookID, def.Term, def.TermNormalized, def.SectionID, def.ChapterID, def.Definition, def.CreatedAt, def.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("SeedBookDefinition: %v", err)
	}

	return def
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
