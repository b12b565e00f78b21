package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
	"github.com/heartmarshall/alice-reader-backend/internal/provider"
)

// maxRelatedTerms caps synonyms and antonyms taken from the external dictionary.
const maxRelatedTerms = 10

// senseSeparator joins the definitions of a multi-sense external result.
const senseSeparator = "\n\n"

func (s *Service) fromGlossary(_ context.Context, q domain.DefinitionQuery) (domain.DictionaryEntry, bool, error) {
	e, ok := s.glossary.Lookup(q.Term)
	if !ok {
		return domain.DictionaryEntry{}, false, nil
	}
	e.Source = domain.SourceGlossary
	return e, true, nil
}

func (s *Service) fromPhrasal(_ context.Context, q domain.DefinitionQuery) (domain.DictionaryEntry, bool, error) {
	phrase, definition, ok := s.phrasal.Lookup(q.Term)
	if !ok {
		return domain.DictionaryEntry{}, false, nil
	}
	return domain.DictionaryEntry{
		Definition:    definition,
		Examples:      []string{phrasalExample(phrase)},
		IsPhrasalVerb: true,
		Source:        domain.SourceGlossary,
	}, true, nil
}

// phrasalExample builds a usage sentence for a phrasal verb.
func phrasalExample(phrase string) string {
	return fmt.Sprintf("Alice had to %s before she could go any further.", phrase)
}

// fromBackend queries the book's own definitions. Queries without a book
// are not sent.
func (s *Service) fromBackend(ctx context.Context, q domain.DefinitionQuery) (domain.DictionaryEntry, bool, error) {
	if s.backend == nil || q.BookID == "" {
		return domain.DictionaryEntry{}, false, nil
	}

	text, err := s.backend.GetDefinition(ctx, q)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.DictionaryEntry{}, false, nil
	}
	if err != nil {
		return domain.DictionaryEntry{}, false, fmt.Errorf("get definition: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.DictionaryEntry{}, false, nil
	}
	return domain.DictionaryEntry{Definition: text, Source: domain.SourceDatabase}, true, nil
}

func (s *Service) fromExternal(ctx context.Context, q domain.DefinitionQuery) (domain.DictionaryEntry, bool, error) {
	if s.external == nil {
		return domain.DictionaryEntry{}, false, nil
	}

	res, err := s.external.FetchEntry(ctx, q.Term)
	if err != nil {
		return domain.DictionaryEntry{}, false, fmt.Errorf("fetch entry: %w", err)
	}
	if res == nil {
		return domain.DictionaryEntry{}, false, nil
	}

	e := mapExternal(res)
	return e, e.Definition != "", nil
}

// mapExternal flattens a provider result into one entry.
func mapExternal(res *provider.DictionaryResult) domain.DictionaryEntry {
	var (
		definitions []string
		examples    []string
	)
	for _, sense := range res.Senses {
		if d := strings.TrimSpace(sense.Definition); d != "" {
			definitions = append(definitions, d)
		}
		for _, ex := range sense.Examples {
			if ex = strings.TrimSpace(ex); ex != "" {
				examples = append(examples, ex)
			}
		}
	}

	e := domain.DictionaryEntry{
		Definition:    strings.Join(definitions, senseSeparator),
		Examples:      examples,
		RelatedTerms:  relatedTerms(res.Synonyms, res.Antonyms),
		Pronunciation: res.Phonetic,
		Source:        domain.SourceExternal,
	}
	if e.Pronunciation == "" {
		e.Pronunciation = res.FirstTranscription()
	}
	if len(res.Origins) > 0 {
		e.WordOrigin = res.Origins[0]
	}
	return e
}

// relatedTerms merges synonyms and antonyms, deduplicated, capped at
// maxRelatedTerms.
func relatedTerms(synonyms, antonyms []string) []string {
	seen := make(map[string]struct{}, len(synonyms)+len(antonyms))
	var out []string
	for _, list := range [][]string{synonyms, antonyms} {
		for _, w := range list {
			w = strings.TrimSpace(w)
			if w == "" {
				continue
			}
			if _, dup := seen[w]; dup {
				continue
			}
			seen[w] = struct{}{}
			out = append(out, w)
			if len(out) == maxRelatedTerms {
				return out
			}
		}
	}
	return out
}

func (s *Service) fromLocal(_ context.Context, q domain.DefinitionQuery) (domain.DictionaryEntry, bool, error) {
	if s.local == nil {
		return domain.DictionaryEntry{}, false, nil
	}
	e, ok := s.local.Lookup(q.Term)
	if !ok {
		return domain.DictionaryEntry{}, false, nil
	}
	e.Source = domain.SourceLocal
	return e, true, nil
}
