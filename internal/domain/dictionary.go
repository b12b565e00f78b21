package domain

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Placeholder definitions for the terminal outcomes of a lookup.
const (
	NotFoundDefinition    = "No definition found for this term."
	LookupErrorDefinition = "Error retrieving definition. Please try again later."
)

// DictionaryEntry is the single best-available definition for a term.
type DictionaryEntry struct {
	Term          string   `json:"term" yaml:"term"`
	Definition    string   `json:"definition" yaml:"definition"`
	Examples      []string `json:"examples,omitempty" yaml:"examples,omitempty"`
	RelatedTerms  []string `json:"relatedTerms,omitempty" yaml:"related_terms,omitempty"`
	Pronunciation string   `json:"pronunciation,omitempty" yaml:"pronunciation,omitempty"`
	WordOrigin    string   `json:"wordOrigin,omitempty" yaml:"word_origin,omitempty"`
	IsPhrasalVerb bool     `json:"isPhrasalVerb,omitempty" yaml:"is_phrasal_verb,omitempty"`
	Source        Source   `json:"source" yaml:"source"`
}

// Clone returns a deep copy so cached entries are never shared with callers.
func (e DictionaryEntry) Clone() DictionaryEntry {
	e.Examples = slices.Clone(e.Examples)
	e.RelatedTerms = slices.Clone(e.RelatedTerms)
	return e
}

// NotFoundEntry builds the terminal entry for a term no tier could define.
func NotFoundEntry(term string) DictionaryEntry {
	return DictionaryEntry{
		Term:       term,
		Definition: NotFoundDefinition,
		Source:     SourceNotFound,
	}
}

// LookupErrorEntry builds the entry returned when the pipeline itself fails.
func LookupErrorEntry(term string) DictionaryEntry {
	return DictionaryEntry{
		Term:       term,
		Definition: LookupErrorDefinition,
		Source:     SourceNotFound,
	}
}

// DefinitionQuery scopes a lookup to a book and, optionally, a section and chapter.
// Empty SectionID/ChapterID mean "not scoped".
type DefinitionQuery struct {
	BookID    string
	Term      string
	SectionID string
	ChapterID string
}

// CacheKey returns the query with its term lowercased. The result is
// comparable and is used directly as the cache key.
func (q DefinitionQuery) CacheKey() DefinitionQuery {
	q.Term = strings.ToLower(q.Term)
	return q
}

// BookDefinition is a context-scoped definition authored for a book.
type BookDefinition struct {
	ID             uuid.UUID
	BookID         string
	Term           string
	TermNormalized string
	SectionID      *string
	ChapterID      *string
	Definition     string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// LookupRecord is one row of word-lookup telemetry.
type LookupRecord struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	BookID          string
	SectionID       *string
	Term            string
	DefinitionFound bool
	CreatedAt       time.Time
}
