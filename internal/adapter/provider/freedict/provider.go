// Package freedict is the client for the FreeDictionary API
// (dictionaryapi.dev), the external tier of the term resolver.
package freedict

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/avast/retry-go"

	"github.com/heartmarshall/alice-reader-backend/internal/config"
	"github.com/heartmarshall/alice-reader-backend/internal/provider"
)

// StatusError is returned for a non-200, non-404 response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.StatusCode)
}

// Provider fetches dictionary data from the FreeDictionary API.
type Provider struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint
	retryOpts  []retry.Option
	log        *slog.Logger
}

// NewProvider creates a Provider from the dictionary configuration. Requests
// that fail with a network error or a 5xx status are retried up to
// cfg.RetryAttempts total attempts, cfg.RetryDelay apart.
func NewProvider(cfg config.DictionaryConfig, logger *slog.Logger) *Provider {
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 1
	}
	return &Provider{
		baseURL:    strings.TrimRight(cfg.ExternalBaseURL, "/"),
		httpClient: &http.Client{Timeout: cfg.ExternalTimeout},
		attempts:   attempts,
		retryOpts: []retry.Option{
			retry.Attempts(attempts),
			retry.Delay(cfg.RetryDelay),
			retry.DelayType(retry.FixedDelay),
			retry.LastErrorOnly(true),
		},
		log: logger.With("adapter", "freedict"),
	}
}

// FetchEntry fetches a dictionary entry for the given word.
// Returns nil, nil if the word is not found (HTTP 404).
func (p *Provider) FetchEntry(ctx context.Context, word string) (*provider.DictionaryResult, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(word)

	p.log.DebugContext(ctx, "freedict request", slog.String("word", word))

	var (
		entries []apiEntry
		found   bool
	)
	opts := append([]retry.Option{
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			if n+1 < p.attempts {
				p.log.WarnContext(ctx, "freedict retry",
					slog.String("word", word),
					slog.Uint64("attempt", uint64(n+1)),
					slog.String("reason", err.Error()),
				)
			}
		}),
	}, p.retryOpts...)

	err := retry.Do(func() error {
		e, ok, err := p.fetchOnce(ctx, reqURL)
		if err != nil {
			return err
		}
		entries, found = e, ok
		return nil
	}, opts...)
	if err != nil {
		p.log.ErrorContext(ctx, "freedict request failed", slog.String("word", word), slog.String("error", err.Error()))
		return nil, fmt.Errorf("freedict: %w", err)
	}

	if !found {
		return nil, nil
	}

	result := mapAPIResponse(entries)

	p.log.DebugContext(ctx, "freedict response",
		slog.String("word", word),
		slog.Int("senses", len(result.Senses)),
		slog.Int("pronunciations", len(result.Pronunciations)),
	)

	return result, nil
}

// fetchOnce performs a single request. Network errors and 5xx responses are
// returned as retryable; everything else is wrapped as unrecoverable.
func (p *Provider) fetchOnce(ctx context.Context, reqURL string) ([]apiEntry, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, false, retry.Unrecoverable(fmt.Errorf("create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, retry.Unrecoverable(err)
		}
		return nil, false, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, false, nil
	case resp.StatusCode >= 500:
		return nil, false, &StatusError{StatusCode: resp.StatusCode}
	case resp.StatusCode != http.StatusOK:
		return nil, false, retry.Unrecoverable(&StatusError{StatusCode: resp.StatusCode})
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read body: %w", err)
	}

	var entries []apiEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, false, retry.Unrecoverable(fmt.Errorf("decode json: %w", err))
	}

	return entries, true, nil
}

// mapAPIResponse converts the API entries into a provider.DictionaryResult.
// Multiple entries (different etymologies) are merged: senses concatenated,
// pronunciations deduplicated by transcription text, synonyms and antonyms
// deduplicated in first-seen order.
func mapAPIResponse(entries []apiEntry) *provider.DictionaryResult {
	result := &provider.DictionaryResult{
		Senses:         []provider.SenseResult{},
		Pronunciations: []provider.PronunciationResult{},
	}

	if len(entries) == 0 {
		return result
	}

	result.Word = entries[0].Word

	seenTranscriptions := make(map[string]int)
	synonyms := newWordSet()
	antonyms := newWordSet()

	for _, entry := range entries {
		if result.Phonetic == "" {
			result.Phonetic = strings.TrimSpace(entry.Phonetic)
		}

		for _, ety := range entry.Etymologies {
			if ety = strings.TrimSpace(ety); ety != "" {
				result.Origins = append(result.Origins, ety)
			}
		}
		if origin := strings.TrimSpace(entry.Origin); origin != "" {
			result.Origins = append(result.Origins, origin)
		}

		for _, meaning := range entry.Meanings {
			synonyms.add(meaning.Synonyms...)
			antonyms.add(meaning.Antonyms...)

			pos := meaning.PartOfSpeech
			for _, def := range meaning.Definitions {
				synonyms.add(def.Synonyms...)
				antonyms.add(def.Antonyms...)

				if strings.TrimSpace(def.Definition) == "" {
					continue
				}
				sense := provider.SenseResult{
					Definition: def.Definition,
					Examples:   []string{},
				}
				if pos != "" {
					posCopy := pos
					sense.PartOfSpeech = &posCopy
				}
				if def.Example != "" {
					sense.Examples = append(sense.Examples, def.Example)
				}
				result.Senses = append(result.Senses, sense)
			}
		}

		for _, ph := range entry.Phonetics {
			pron := mapPhonetic(ph)
			if pron == nil {
				continue
			}

			if pron.Transcription != nil {
				key := *pron.Transcription
				if idx, exists := seenTranscriptions[key]; exists {
					// Prefer a variant that carries audio.
					if result.Pronunciations[idx].AudioURL == nil && pron.AudioURL != nil {
						result.Pronunciations[idx].AudioURL = pron.AudioURL
						result.Pronunciations[idx].Region = pron.Region
					}
					continue
				}
				seenTranscriptions[key] = len(result.Pronunciations)
			}

			result.Pronunciations = append(result.Pronunciations, *pron)
		}
	}

	result.Synonyms = synonyms.words
	result.Antonyms = antonyms.words

	return result
}

// mapPhonetic converts an API phonetic to a PronunciationResult.
// Returns nil if both text and audio are empty.
func mapPhonetic(ph apiPhonetic) *provider.PronunciationResult {
	if ph.Text == "" && ph.Audio == "" {
		return nil
	}

	pron := &provider.PronunciationResult{}

	if ph.Text != "" {
		t := ph.Text
		pron.Transcription = &t
	}

	if ph.Audio != "" {
		a := ph.Audio
		pron.AudioURL = &a
		pron.Region = inferRegion(ph.Audio)
	}

	return pron
}

// inferRegion guesses the accent from the audio file name.
func inferRegion(audioURL string) *string {
	lower := strings.ToLower(audioURL)
	if strings.Contains(lower, "-us.") || strings.Contains(lower, "-us-") {
		r := "US"
		return &r
	}
	if strings.Contains(lower, "-uk.") || strings.Contains(lower, "-uk-") {
		r := "UK"
		return &r
	}
	return nil
}

type wordSet struct {
	seen  map[string]struct{}
	words []string
}

func newWordSet() *wordSet {
	return &wordSet{seen: make(map[string]struct{})}
}

func (s *wordSet) add(words ...string) {
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := s.seen[w]; ok {
			continue
		}
		s.seen[w] = struct{}{}
		s.words = append(s.words, w)
	}
}
