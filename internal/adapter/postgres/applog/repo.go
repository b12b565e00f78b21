// Package applog persists diagnostic events to the app_logs table.
package applog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/alice-reader-backend/internal/adapter/postgres"
	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

const table = "app_logs"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo stores log events.
type Repo struct {
	db postgres.Querier
}

// New creates a new app log repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Write inserts one event. A nil context map is stored as an empty object.
func (r *Repo) Write(ctx context.Context, ev domain.LogEvent) error {
	fields := ev.Context
	if fields == nil {
		fields = map[string]any{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("app_log %s: marshal context: %w", ev.Component, err)
	}

	sqlStr, args, err := psql.Insert(table).
		Columns("component", "message", "level", "context", "created_at").
		Values(ev.Component, ev.Message, string(ev.Level), payload, ev.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("app_log %s: build query: %w", ev.Component, err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sqlStr, args...); err != nil {
		return postgres.MapError(err, "app_log", ev.Component)
	}
	return nil
}

// DeleteOlderThan removes events created before cutoff.
func (r *Repo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	sqlStr, args, err := psql.Delete(table).Where(sq.Lt{"created_at": cutoff}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("app_log cleanup: build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, postgres.MapError(err, "app_log", "cleanup")
	}
	return tag.RowsAffected(), nil
}
