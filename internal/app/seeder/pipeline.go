// Package seeder loads authored book definitions into the database.
package seeder

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

type txRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// DefinitionRepo is the repository contract consumed by the pipeline.
// Implemented by definition.Repo.
type DefinitionRepo interface {
	Upsert(ctx context.Context, def domain.BookDefinition) error
	CountByBook(ctx context.Context, bookID string) (int64, error)
}

// Result summarizes a seeding run.
type Result struct {
	BookID   string
	Upserted int
	// Total is the number of definitions stored for the book afterwards.
	// It is zero for dry runs.
	Total    int64
	DryRun   bool
	Duration time.Duration
}

// Pipeline upserts one seed file inside a single transaction.
type Pipeline struct {
	log  *slog.Logger
	txm  txRunner
	repo DefinitionRepo
	cfg  Config
	now  func() time.Time
}

// NewPipeline creates a new Pipeline.
func NewPipeline(log *slog.Logger, txm txRunner, repo DefinitionRepo, cfg Config) *Pipeline {
	return &Pipeline{
		log:  log.With("component", "seeder"),
		txm:  txm,
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

// Run writes every definition in sf. Either all are stored or none are.
// In dry-run mode nothing touches the database.
func (p *Pipeline) Run(ctx context.Context, sf *SeedFile) (Result, error) {
	start := time.Now()
	res := Result{BookID: sf.BookID, DryRun: p.cfg.DryRun}

	if err := sf.Validate(); err != nil {
		return res, err
	}

	defs := p.toDomain(sf)

	if p.cfg.DryRun {
		res.Upserted = len(defs)
		res.Duration = time.Since(start)
		p.log.Info("dry run: seed file valid", slog.String("book_id", sf.BookID), slog.Int("definitions", len(defs)))
		return res, nil
	}

	err := p.txm.RunInTx(ctx, func(ctx context.Context) error {
		n, err := batchProcess(defs, p.cfg.BatchSize, func(batch []domain.BookDefinition) (int, error) {
			for _, d := range batch {
				if err := p.repo.Upsert(ctx, d); err != nil {
					return 0, fmt.Errorf("upsert %q: %w", d.Term, err)
				}
			}
			p.log.Debug("batch upserted", slog.Int("size", len(batch)))
			return len(batch), nil
		})
		res.Upserted = n
		return err
	})
	if err != nil {
		return res, fmt.Errorf("seed book %s: %w", sf.BookID, err)
	}

	total, err := p.repo.CountByBook(ctx, sf.BookID)
	if err != nil {
		return res, fmt.Errorf("count definitions: %w", err)
	}
	res.Total = total
	res.Duration = time.Since(start)

	p.log.Info("seed completed",
		slog.String("book_id", sf.BookID),
		slog.Int("upserted", res.Upserted),
		slog.Int64("total", res.Total),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

func (p *Pipeline) toDomain(sf *SeedFile) []domain.BookDefinition {
	now := p.now().UTC()
	bookID := strings.TrimSpace(sf.BookID)

	out := make([]domain.BookDefinition, 0, len(sf.Definitions))
	for _, d := range sf.Definitions {
		out = append(out, domain.BookDefinition{
			ID:             uuid.New(),
			BookID:         bookID,
			Term:           strings.TrimSpace(d.Term),
			TermNormalized: domain.NormalizeText(d.Term),
			SectionID:      optional(d.SectionID),
			ChapterID:      optional(d.ChapterID),
			Definition:     strings.TrimSpace(d.Definition),
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	}
	return out
}

// optional trims s and returns nil when empty.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// batchProcess splits items into batches and processes each via fn.
func batchProcess[T any](items []T, batchSize int, fn func([]T) (int, error)) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	if batchSize <= 0 {
		batchSize = 200
	}

	total := 0
	for i := 0; i < len(items); i += batchSize {
		end := min(i+batchSize, len(items))
		n, err := fn(items[i:end])
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}
