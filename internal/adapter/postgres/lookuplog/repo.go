// Package lookuplog implements append-only persistence of word-lookup
// telemetry (the dictionary_lookups table).
package lookuplog

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres"
	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

const table = "dictionary_lookups"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo stores lookup records.
type Repo struct {
	db postgres.Querier
}

// New creates a new lookup log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts one lookup record.
func (r *Repo) Create(ctx context.Context, rec domain.LookupRecord) error {
	sqlStr, args, err := psql.Insert(table).
		Columns("id", "user_id", "book_id", "section_id", "term", "definition_found", "created_at").
		Values(rec.ID, rec.UserID, rec.BookID, rec.SectionID, rec.Term, rec.DefinitionFound, rec.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("lookup %s: build query: %w", rec.ID, err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sqlStr, args...); err != nil {
		return postgres.MapError(err, "lookup", rec.ID)
	}
	return nil
}

// DeleteOlderThan removes records created before cutoff and returns how
// many were deleted.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sqlStr, args, err := psql.Delete(table).Where(sq.Lt{"created_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("lookup cleanup: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, postgres.MapError(err, "lookup", "cleanup")
	}
	return tag.RowsAffected(), nil
}
