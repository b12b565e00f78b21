package freedict

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/alice-reader-backend/internal/config"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestProvider(baseURL string) *Provider {
	return NewProvider(config.DictionaryConfig{
		ExternalBaseURL: baseURL,
		ExternalTimeout: 2 * time.Second,
		RetryAttempts:   2,
		RetryDelay:      time.Millisecond,
	}, newTestLogger())
}

func jsonServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestProvider_FetchEntry_Success(t *testing.T) {
	t.Parallel()

	body := `[{
		"word": "curious",
		"phonetic": "/ˈkjʊə.ɹi.əs/",
		"phonetics": [
			{"text": "/ˈkjʊə.ɹi.əs/", "audio": "https://example.com/curious-uk.mp3"},
			{"text": "/ˈkjʊɹ.i.əs/", "audio": "https://example.com/curious-us.mp3"}
		],
		"origin": "Middle English, from Old French curios.",
		"meanings": [
			{
				"partOfSpeech": "adjective",
				"synonyms": ["inquisitive", "nosy"],
				"antonyms": ["indifferent"],
				"definitions": [
					{"definition": "Tending to ask questions.", "example": "Alice was a curious child.", "synonyms": ["inquisitive", "prying"]},
					{"definition": "Unusual; odd.", "example": "", "antonyms": ["ordinary"]}
				]
			}
		]
	}]`

	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "curious")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "/curious", gotPath.Load())
	assert.Equal(t, "curious", result.Word)
	assert.Equal(t, "/ˈkjʊə.ɹi.əs/", result.Phonetic)
	assert.Equal(t, []string{"Middle English, from Old French curios."}, result.Origins)
	assert.Equal(t, []string{"inquisitive", "nosy", "prying"}, result.Synonyms)
	assert.Equal(t, []string{"indifferent", "ordinary"}, result.Antonyms)

	require.Len(t, result.Senses, 2)
	assert.Equal(t, "Tending to ask questions.", result.Senses[0].Definition)
	require.NotNil(t, result.Senses[0].PartOfSpeech)
	assert.Equal(t, "adjective", *result.Senses[0].PartOfSpeech)
	assert.Equal(t, []string{"Alice was a curious child."}, result.Senses[0].Examples)
	assert.Empty(t, result.Senses[1].Examples)

	require.Len(t, result.Pronunciations, 2)
	require.NotNil(t, result.Pronunciations[0].Region)
	assert.Equal(t, "UK", *result.Pronunciations[0].Region)
	require.NotNil(t, result.Pronunciations[1].Region)
	assert.Equal(t, "US", *result.Pronunciations[1].Region)
}

func TestProvider_FetchEntry_PathEscapesPhrase(t *testing.T) {
	t.Parallel()

	var gotPath atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath.Store(r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL+"/").FetchEntry(context.Background(), "tea party")
	require.NoError(t, err)
	assert.Equal(t, "/tea party", gotPath.Load())
}

func TestProvider_FetchEntry_NotFound(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusNotFound, `{"title":"No Definitions Found"}`)

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "jabberwock")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestProvider_FetchEntry_ServerErrorRetrySuccess(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if callCount.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[{"word":"test","phonetics":[],"meanings":[]}]`))
	}))
	defer srv.Close()

	result, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "test")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "test", result.Word)
	assert.Equal(t, int32(2), callCount.Load())
}

func TestProvider_FetchEntry_ServerErrorAllAttemptsFail(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "fail")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr), "want *StatusError, got %v", err)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Equal(t, int32(2), callCount.Load())
}

func TestProvider_FetchEntry_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var callCount atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "busy")
	require.Error(t, err)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, int32(1), callCount.Load())
}

func TestProvider_FetchEntry_InvalidJSON(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `not valid json`)

	_, err := newTestProvider(srv.URL).FetchEntry(context.Background(), "bad")
	require.Error(t, err)
}

func TestProvider_FetchEntry_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := jsonServer(t, http.StatusOK, `[]`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestProvider(srv.URL).FetchEntry(ctx, "late")
	require.Error(t, err)
}

func TestMapAPIResponse_MultipleEntries(t *testing.T) {
	t.Parallel()

	entries := []apiEntry{
		{
			Word:        "run",
			Etymologies: []string{"From Old English rinnan."},
			Phonetics:   []apiPhonetic{{Text: "/rʌn/", Audio: ""}},
			Meanings: []apiMeaning{{
				PartOfSpeech: "verb",
				Definitions:  []apiDefinition{{Definition: "To move fast.", Example: "She runs every day."}},
			}},
		},
		{
			Word:      "run",
			Origin:    "Old Norse renna.",
			Phonetics: []apiPhonetic{{Text: "/rʌn/", Audio: "https://example.com/run-us.mp3"}},
			Meanings: []apiMeaning{{
				PartOfSpeech: "noun",
				Definitions:  []apiDefinition{{Definition: "An act of running."}, {Definition: "   "}},
			}},
		},
	}

	result := mapAPIResponse(entries)

	require.Len(t, result.Senses, 2, "blank definitions are skipped")
	assert.Equal(t, "verb", *result.Senses[0].PartOfSpeech)
	assert.Equal(t, "noun", *result.Senses[1].PartOfSpeech)
	assert.Equal(t, []string{"From Old English rinnan.", "Old Norse renna."}, result.Origins)

	require.Len(t, result.Pronunciations, 1, "pronunciations deduplicated by transcription")
	require.NotNil(t, result.Pronunciations[0].AudioURL, "audio taken from the later duplicate")
	assert.Equal(t, "/rʌn/", result.FirstTranscription())
	assert.Empty(t, result.Phonetic)
}

func TestMapAPIResponse_Empty(t *testing.T) {
	t.Parallel()

	result := mapAPIResponse(nil)
	assert.Empty(t, result.Word)
	assert.Empty(t, result.Senses)
	assert.Empty(t, result.FirstTranscription())
}
