package lookup

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
	"github.com/heartmarshall/alice-reader-backend/internal/provider"
	"github.com/heartmarshall/alice-reader-backend/internal/telemetry"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockDefinitionStore struct {
	GetDefinitionFunc func(ctx context.Context, q domain.DefinitionQuery) (string, error)
	calls             atomic.Int32
}

func (m *mockDefinitionStore) GetDefinition(ctx context.Context, q domain.DefinitionQuery) (string, error) {
	m.calls.Add(1)
	return m.GetDefinitionFunc(ctx, q)
}

type mockDictionaryProvider struct {
	FetchEntryFunc func(ctx context.Context, word string) (*provider.DictionaryResult, error)
	calls          atomic.Int32
}

func (m *mockDictionaryProvider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	m.calls.Add(1)
	return m.FetchEntryFunc(ctx, word)
}

type mockLookupLogRepo struct {
	CreateFunc func(ctx context.Context, rec domain.LookupRecord) error
}

func (m *mockLookupLogRepo) Create(ctx context.Context, rec domain.LookupRecord) error {
	return m.CreateFunc(ctx, rec)
}

type reportedEvent struct {
	Component string
	Message   string
	Level     domain.LogLevel
	Fields    map[string]any
}

type recordingReporter struct {
	mu     sync.Mutex
	events []reportedEvent
}

func (r *recordingReporter) Report(_ context.Context, component, message string, level domain.LogLevel, fields map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, reportedEvent{component, message, level, fields})
}

func (r *recordingReporter) all() []reportedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]reportedEvent(nil), r.events...)
}

// fakeJobs collects submitted jobs so tests can run them explicitly.
type fakeJobs struct {
	mu   sync.Mutex
	jobs []telemetry.Job
}

func (f *fakeJobs) Submit(_ string, job telemetry.Job) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return true
}

func (f *fakeJobs) runAll(ctx context.Context) {
	f.mu.Lock()
	jobs := f.jobs
	f.jobs = nil
	f.mu.Unlock()
	for _, j := range jobs {
		_ = j(ctx)
	}
}

type fakeMetrics struct {
	mu          sync.Mutex
	resolutions map[domain.Source]int
	hits        int
	misses      int
	faults      map[string]int
}

func newFakeMetrics() *fakeMetrics {
	return &fakeMetrics{resolutions: map[domain.Source]int{}, faults: map[string]int{}}
}

func (m *fakeMetrics) Resolution(source domain.Source) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resolutions[source]++
}

func (m *fakeMetrics) CacheLookup(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func (m *fakeMetrics) TierFault(tier string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[tier]++
}

// panickingCache fails every read, simulating a fault outside the tiers.
type panickingCache struct{}

func (panickingCache) Get(domain.DefinitionQuery) (domain.DictionaryEntry, bool) {
	panic("cache corrupted")
}
func (panickingCache) Set(domain.DefinitionQuery, domain.DictionaryEntry, time.Duration) {}
func (panickingCache) Clear()                                                            {}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
