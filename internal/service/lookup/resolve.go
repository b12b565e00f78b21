package lookup

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

const component = "term_resolver"

// tier is one stage of the pipeline. A miss returns ok=false with a nil
// error; a fault returns an error.
type tier struct {
	name string
	run  func(ctx context.Context, q domain.DefinitionQuery) (domain.DictionaryEntry, bool, error)
}

// Resolve returns the best available definition for q.Term. The term is
// cleaned of surrounding punctuation first; an empty result resolves to
// not_found without touching the cache. Cached entries are returned while
// live. A fault inside a tier is reported and the next tier is tried; a
// fault outside the tiers yields the lookup-error entry. The tiers run
// detached from ctx cancellation, so an abandoned request still completes
// and caches its result.
func (s *Service) Resolve(ctx context.Context, q domain.DefinitionQuery) (entry domain.DictionaryEntry) {
	term := domain.CleanTerm(q.Term)

	defer func() {
		if r := recover(); r != nil {
			s.fault(ctx, "pipeline", term, fmt.Errorf("panic: %v", r))
			entry = domain.LookupErrorEntry(term)
		}
	}()

	if term == "" {
		s.observe(domain.SourceNotFound)
		return domain.NotFoundEntry(term)
	}
	q.Term = term
	key := q.CacheKey()

	if cached, ok := s.cache.Get(key); ok {
		s.cacheLookup(true)
		return cached.Clone()
	}
	s.cacheLookup(false)

	entry = s.runPipeline(context.WithoutCancel(ctx), q)
	s.cache.Set(key, entry.Clone(), s.ttlFor(entry.Source))
	s.observe(entry.Source)

	s.log.DebugContext(ctx, "term resolved",
		slog.String("term", term),
		slog.String("book_id", q.BookID),
		slog.String("source", entry.Source.String()),
	)

	return entry
}

func (s *Service) runPipeline(ctx context.Context, q domain.DefinitionQuery) domain.DictionaryEntry {
	tiers := []tier{
		{name: "glossary", run: s.fromGlossary},
		{name: "phrasal", run: s.fromPhrasal},
		{name: "database", run: s.fromBackend},
		{name: "external", run: s.fromExternal},
		{name: "local", run: s.fromLocal},
	}

	for _, t := range tiers {
		if e, ok := s.runTier(ctx, t, q); ok {
			if e.Term == "" {
				e.Term = q.Term
			}
			return e
		}
	}

	return domain.NotFoundEntry(q.Term)
}

// runTier isolates one tier: errors and panics become reported faults and a
// miss. Hits without definition text are treated as misses.
func (s *Service) runTier(ctx context.Context, t tier, q domain.DefinitionQuery) (e domain.DictionaryEntry, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			s.fault(ctx, t.name, q.Term, fmt.Errorf("panic: %v", r))
			e, ok = domain.DictionaryEntry{}, false
		}
	}()

	e, ok, err := t.run(ctx, q)
	if err != nil {
		s.fault(ctx, t.name, q.Term, err)
		return domain.DictionaryEntry{}, false
	}
	if !ok || e.Definition == "" {
		return domain.DictionaryEntry{}, false
	}
	return e, true
}

// ttlFor picks the cache lifetime for a result. Unknown sources get the
// short lifetime.
func (s *Service) ttlFor(source domain.Source) time.Duration {
	switch source {
	case domain.SourceGlossary, domain.SourceDatabase, domain.SourceExternal, domain.SourceLocal, domain.SourceFallback:
		return s.cacheTTL
	case domain.SourceNotFound:
		return s.notFoundTTL
	default:
		return s.notFoundTTL
	}
}

func (s *Service) fault(ctx context.Context, tierName, term string, err error) {
	if s.metrics != nil {
		s.metrics.TierFault(tierName)
	}
	fields := map[string]any{"tier": tierName, "term": term, "error": err.Error()}
	if s.events == nil {
		s.log.ErrorContext(ctx, "lookup fault", slog.String("tier", tierName), slog.String("term", term), slog.String("error", err.Error()))
		return
	}
	s.events.Report(ctx, component, "lookup fault", domain.LogLevelError, fields)
}

func (s *Service) observe(source domain.Source) {
	if s.metrics != nil {
		s.metrics.Resolution(source)
	}
}

func (s *Service) cacheLookup(hit bool) {
	if s.metrics != nil {
		s.metrics.CacheLookup(hit)
	}
}
