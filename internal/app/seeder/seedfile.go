package seeder

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// SeedFile is the on-disk format for a book's authored definitions.
//
//	book_id: alice-in-wonderland
//	definitions:
//	  - term: treacle-well
//	    chapter_id: ch-7
//	    definition: A well full of treacle, from the Dormouse's story.
type SeedFile struct {
	BookID      string           `yaml:"book_id"`
	Definitions []SeedDefinition `yaml:"definitions"`
}

// SeedDefinition is one authored definition. Empty section and chapter
// mean the definition applies book-wide.
type SeedDefinition struct {
	Term       string `yaml:"term"`
	SectionID  string `yaml:"section_id"`
	ChapterID  string `yaml:"chapter_id"`
	Definition string `yaml:"definition"`
}

// ReadSeedFile opens and parses the seed file at path.
func ReadSeedFile(path string) (*SeedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	sf, err := ParseSeedFile(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sf, nil
}

// ParseSeedFile decodes and validates a seed document. Unknown keys are rejected.
func ParseSeedFile(r io.Reader) (*SeedFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var sf SeedFile
	if err := dec.Decode(&sf); err != nil {
		if err == io.EOF {
			return nil, domain.NewValidationError("file", "empty seed file")
		}
		return nil, fmt.Errorf("decode seed file: %w", err)
	}

	if err := sf.Validate(); err != nil {
		return nil, err
	}
	return &sf, nil
}

// Validate checks all fields and collects all errors.
func (sf SeedFile) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(sf.BookID) == "" {
		errs = append(errs, domain.FieldError{Field: "book_id", Message: "required"})
	}
	if len(sf.Definitions) == 0 {
		errs = append(errs, domain.FieldError{Field: "definitions", Message: "at least one definition required"})
	}

	type scopeKey struct{ term, section, chapter string }
	seen := make(map[scopeKey]int, len(sf.Definitions))

	for i, d := range sf.Definitions {
		field := fmt.Sprintf("definitions[%d]", i)
		term := domain.NormalizeText(d.Term)
		if term == "" {
			errs = append(errs, domain.FieldError{Field: field + ".term", Message: "required"})
		}
		if strings.TrimSpace(d.Definition) == "" {
			errs = append(errs, domain.FieldError{Field: field + ".definition", Message: "required"})
		}
		if term == "" {
			continue
		}

		key := scopeKey{term, strings.TrimSpace(d.SectionID), strings.TrimSpace(d.ChapterID)}
		if prev, dup := seen[key]; dup {
			errs = append(errs, domain.FieldError{
				Field:   field,
				Message: fmt.Sprintf("duplicates definitions[%d]", prev),
			})
			continue
		}
		seen[key] = i
	}

	return domain.NewValidationErrors(errs)
}
