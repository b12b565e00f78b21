package glossary

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

//go:embed data/phrasal_verbs.yaml
var phrasalYAML []byte

// PhrasalVerbs maps two-word lowercase phrases to short definitions.
type PhrasalVerbs struct {
	definitions map[string]string
}

// LoadPhrasalVerbs parses the embedded phrasal-verb table.
func LoadPhrasalVerbs() (*PhrasalVerbs, error) {
	return ParsePhrasalVerbs(phrasalYAML)
}

// ParsePhrasalVerbs builds the table from a YAML mapping of phrase to definition.
// Keys must be lowercase two-word phrases.
func ParsePhrasalVerbs(data []byte) (*PhrasalVerbs, error) {
	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("phrasal verbs: decode yaml: %w", err)
	}

	p := &PhrasalVerbs{definitions: make(map[string]string, len(raw))}
	for phrase, def := range raw {
		if phrase != strings.ToLower(phrase) || len(strings.Fields(phrase)) != 2 {
			return nil, fmt.Errorf("phrasal verbs: %q must be a lowercase two-word phrase", phrase)
		}
		if strings.TrimSpace(def) == "" {
			return nil, fmt.Errorf("phrasal verbs: %q has no definition", phrase)
		}
		p.definitions[phrase] = strings.TrimSpace(def)
	}
	return p, nil
}

// Lookup checks the lowercased term and its normalized variants
// (collapsed whitespace, punctuation stripped, both) against the table.
// It returns the matching phrase and its definition.
func (p *PhrasalVerbs) Lookup(term string) (phrase, definition string, ok bool) {
	if p == nil {
		return "", "", false
	}
	lower := strings.ToLower(term)
	for _, variant := range []string{
		lower,
		domain.CollapseSpaces(lower),
		domain.StripPunctuation(lower),
		domain.CollapseSpaces(domain.StripPunctuation(lower)),
	} {
		if def, found := p.definitions[variant]; found {
			return variant, def, true
		}
	}
	return "", "", false
}

// Len returns the number of phrasal verbs.
func (p *PhrasalVerbs) Len() int {
	if p == nil {
		return 0
	}
	return len(p.definitions)
}
