// Package definition implements the book-scoped definition store using
// PostgreSQL. Lookups prefer the most specific scope: chapter, then section,
// then book-wide.
package definition

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres"
	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

const table = "book_definitions"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides book definition persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new definition repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetDefinition returns the definition text for the query's term within the
// book. A row scoped to a section or chapter only matches when the query
// carries the same id. Returns domain.ErrNotFound when no row matches.
func (r *Repo) GetDefinition(ctx context.Context, q domain.DefinitionQuery) (string, error) {
	term := domain.NormalizeText(q.Term)
	key := q.BookID + "/" + term

	query := psql.Select("definition").
		From(table).
		Where(sq.Eq{"book_id": q.BookID, "term_normalized": term}).
		Where(scope("section_id", q.SectionID)).
		Where(scope("chapter_id", q.ChapterID)).
		OrderBy("chapter_id IS NOT NULL DESC", "section_id IS NOT NULL DESC").
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return "", fmt.Errorf("book_definition %s: build query: %w", key, err)
	}

	var definition string
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).Scan(&definition); err != nil {
		return "", postgres.MapError(err, "book_definition", key)
	}

	return definition, nil
}

// Upsert inserts a definition or, when one already exists for the same
// book, normalized term and scope, replaces its text.
func (r *Repo) Upsert(ctx context.Context, def domain.BookDefinition) error {
	query := psql.Insert(table).
		Columns("id", "book_id", "term", "term_normalized", "section_id", "chapter_id", "definition", "created_at", "updated_at").
		Values(def.ID, def.BookID, def.Term, def.TermNormalized, def.SectionID, def.ChapterID, def.Definition, def.CreatedAt, def.UpdatedAt).
		Suffix(`ON CONFLICT (book_id, term_normalized, (coalesce(section_id, '')), (coalesce(chapter_id, '')))
DO UPDATE SET term = EXCLUDED.term, definition = EXCLUDED.definition, updated_at = EXCLUDED.updated_at`)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("book_definition %s: build query: %w", def.ID, err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sqlStr, args...); err != nil {
		return postgres.MapError(err, "book_definition", def.ID)
	}

	return nil
}

// CountByBook returns the number of definitions authored for a book.
func (r *Repo) CountByBook(ctx context.Context, bookID string) (int64, error) {
	sqlStr, args, err := psql.Select("count(*)").From(table).Where(sq.Eq{"book_id": bookID}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("book_definition %s: build query: %w", bookID, err)
	}

	var n int64
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "book_definition", bookID)
	}
	return n, nil
}

// scope matches unscoped rows and, when id is set, rows scoped to id.
func scope(column, id string) sq.Sqlizer {
	if id == "" {
		return sq.Eq{column: nil}
	}
	return sq.Or{sq.Eq{column: nil}, sq.Eq{column: id}}
}
