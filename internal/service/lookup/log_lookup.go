package lookup

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// LogLookup records a lookup in the background. It returns immediately;
// invalid input and persistence failures are reported, never returned.
func (s *Service) LogLookup(ctx context.Context, in LookupInput) {
	if s.lookups == nil || s.jobs == nil {
		s.log.DebugContext(ctx, "lookup logging disabled", slog.String("term", in.Term))
		return
	}

	if err := in.Validate(); err != nil {
		s.report(ctx, "invalid lookup record", domain.LogLevelWarn, map[string]any{"error": err.Error()})
		return
	}

	rec := domain.LookupRecord{
		ID:              uuid.New(),
		UserID:          in.UserID,
		BookID:          in.BookID,
		Term:            in.Term,
		DefinitionFound: in.DefinitionFound,
		CreatedAt:       s.now().UTC(),
	}
	if in.SectionID != "" {
		section := in.SectionID
		rec.SectionID = &section
	}

	s.jobs.Submit("lookup_log", func(ctx context.Context) error {
		if err := s.lookups.Create(ctx, rec); err != nil {
			s.report(ctx, "lookup log failed", domain.LogLevelError, map[string]any{
				"term":    rec.Term,
				"book_id": rec.BookID,
				"error":   err.Error(),
			})
		}
		return nil
	})
}

func (s *Service) report(ctx context.Context, message string, level domain.LogLevel, fields map[string]any) {
	if s.events == nil {
		s.log.Log(ctx, slogLevel(level), message, slog.Any("fields", fields))
		return
	}
	s.events.Report(ctx, component, message, level, fields)
}

func slogLevel(l domain.LogLevel) slog.Level {
	switch l {
	case domain.LogLevelDebug:
		return slog.LevelDebug
	case domain.LogLevelWarn:
		return slog.LevelWarn
	case domain.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
