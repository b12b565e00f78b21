// Package lookup implements the term resolver: a prioritized, cached lookup
// over the glossary, phrasal verbs, book definitions, the external
// dictionary and a local fallback. Resolve never fails; every outcome is a
// domain.DictionaryEntry.
package lookup

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
	"github.com/heartmarshall/alice-reader-backend/internal/provider"
	"github.com/heartmarshall/alice-reader-backend/internal/telemetry"
)

type glossaryTable interface {
	Lookup(term string) (domain.DictionaryEntry, bool)
}

type phrasalTable interface {
	Lookup(term string) (phrase, definition string, ok bool)
}

type localTable interface {
	Lookup(term string) (domain.DictionaryEntry, bool)
}

type definitionStore interface {
	GetDefinition(ctx context.Context, q domain.DefinitionQuery) (string, error)
}

type dictionaryProvider interface {
	FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error)
}

type entryCache interface {
	Get(key domain.DefinitionQuery) (domain.DictionaryEntry, bool)
	Set(key domain.DefinitionQuery, value domain.DictionaryEntry, ttl time.Duration)
	Clear()
}

type lookupLogRepo interface {
	Create(ctx context.Context, rec domain.LookupRecord) error
}

type eventReporter interface {
	Report(ctx context.Context, component, message string, level domain.LogLevel, fields map[string]any)
}

type jobQueue interface {
	Submit(name string, job telemetry.Job) bool
}

type resolverMetrics interface {
	Resolution(source domain.Source)
	CacheLookup(hit bool)
	TierFault(tier string)
}

// Deps are the resolver's collaborators. Glossary, Phrasal and Cache are
// required; a nil tier is skipped and a nil Lookups or Jobs disables lookup
// logging.
type Deps struct {
	Glossary glossaryTable
	Phrasal  phrasalTable
	Backend  definitionStore
	External dictionaryProvider
	Local    localTable
	Cache    entryCache
	Lookups  lookupLogRepo
	Events   eventReporter
	Jobs     jobQueue
	Metrics  resolverMetrics
}

// Options tune cache lifetimes. Now defaults to time.Now.
type Options struct {
	CacheTTL    time.Duration
	NotFoundTTL time.Duration
	Now         func() time.Time
}

// Service resolves terms to definitions.
type Service struct {
	log         *slog.Logger
	glossary    glossaryTable
	phrasal     phrasalTable
	backend     definitionStore
	external    dictionaryProvider
	local       localTable
	cache       entryCache
	lookups     lookupLogRepo
	events      eventReporter
	jobs        jobQueue
	metrics     resolverMetrics
	cacheTTL    time.Duration
	notFoundTTL time.Duration
	now         func() time.Time
}

// NewService creates a new term resolver.
func NewService(logger *slog.Logger, deps Deps, opts Options) *Service {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		log:         logger.With("service", "lookup"),
		glossary:    deps.Glossary,
		phrasal:     deps.Phrasal,
		backend:     deps.Backend,
		external:    deps.External,
		local:       deps.Local,
		cache:       deps.Cache,
		lookups:     deps.Lookups,
		events:      deps.Events,
		jobs:        deps.Jobs,
		metrics:     deps.Metrics,
		cacheTTL:    opts.CacheTTL,
		notFoundTTL: opts.NotFoundTTL,
		now:         now,
	}
}

// ClearCache drops every cached definition immediately.
func (s *Service) ClearCache(ctx context.Context) {
	s.cache.Clear()
	s.log.InfoContext(ctx, "definition cache cleared")
}
