package glossary

import (
	"strings"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// LocalDictionary is the last-resort offline dictionary consulted after the
// external service. It ships empty; entries are keyed by lowercase term.
type LocalDictionary struct {
	entries map[string]domain.DictionaryEntry
}

// NewLocalDictionary creates a local dictionary from entries keyed by term.
// A nil map yields an empty dictionary.
func NewLocalDictionary(entries map[string]domain.DictionaryEntry) *LocalDictionary {
	d := &LocalDictionary{entries: make(map[string]domain.DictionaryEntry, len(entries))}
	for term, e := range entries {
		e.Source = domain.SourceLocal
		d.entries[strings.ToLower(term)] = e
	}
	return d
}

// Lookup returns the entry for term, matched case-insensitively.
func (d *LocalDictionary) Lookup(term string) (domain.DictionaryEntry, bool) {
	if d == nil {
		return domain.DictionaryEntry{}, false
	}
	e, ok := d.entries[strings.ToLower(term)]
	if !ok {
		return domain.DictionaryEntry{}, false
	}
	return e.Clone(), true
}
