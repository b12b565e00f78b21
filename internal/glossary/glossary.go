// Package glossary holds the built-in lookup tables: the book glossary of
// characters and concepts, the phrasal-verb table, and the local fallback
// dictionary. Tables are parsed once from embedded YAML and are read-only
// afterwards, so they are safe for concurrent use.
package glossary

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

//go:embed data/glossary.yaml
var glossaryYAML []byte

// Glossary maps canonical book terms ("White Rabbit") to pre-authored entries.
type Glossary struct {
	entries map[string]domain.DictionaryEntry
}

type glossaryRecord struct {
	Term          string   `yaml:"term"`
	Definition    string   `yaml:"definition"`
	Examples      []string `yaml:"examples"`
	RelatedTerms  []string `yaml:"related_terms"`
	Pronunciation string   `yaml:"pronunciation"`
	WordOrigin    string   `yaml:"word_origin"`
}

// Load parses the embedded book glossary.
func Load() (*Glossary, error) {
	return Parse(glossaryYAML)
}

// Parse builds a Glossary from a YAML list of records.
// Every record needs a term and a definition; duplicate terms are rejected.
func Parse(data []byte) (*Glossary, error) {
	var records []glossaryRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("glossary: decode yaml: %w", err)
	}

	g := &Glossary{entries: make(map[string]domain.DictionaryEntry, len(records))}
	for i, rec := range records {
		term := strings.TrimSpace(rec.Term)
		def := strings.TrimSpace(rec.Definition)
		if term == "" || def == "" {
			return nil, fmt.Errorf("glossary: record %d: term and definition are required", i)
		}
		if _, dup := g.entries[term]; dup {
			return nil, fmt.Errorf("glossary: duplicate term %q", term)
		}
		g.entries[term] = domain.DictionaryEntry{
			Term:          term,
			Definition:    def,
			Examples:      rec.Examples,
			RelatedTerms:  rec.RelatedTerms,
			Pronunciation: rec.Pronunciation,
			WordOrigin:    rec.WordOrigin,
			Source:        domain.SourceGlossary,
		}
	}
	return g, nil
}

// Lookup matches term against the glossary trying, in order, the exact
// form, lowercase, capitalized and title case.
func (g *Glossary) Lookup(term string) (domain.DictionaryEntry, bool) {
	if g == nil || term == "" {
		return domain.DictionaryEntry{}, false
	}
	for _, variant := range []string{
		term,
		strings.ToLower(term),
		domain.Capitalize(term),
		domain.TitleCase(term),
	} {
		if entry, ok := g.entries[variant]; ok {
			return entry.Clone(), true
		}
	}
	return domain.DictionaryEntry{}, false
}

// Len returns the number of glossary terms.
func (g *Glossary) Len() int {
	if g == nil {
		return 0
	}
	return len(g.entries)
}
