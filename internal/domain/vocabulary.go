package domain

import "time"

// VocabularyItem is a word a reader saved to their personal list.
type VocabularyItem struct {
	Term       string     `json:"term" yaml:"term"`
	Definition string     `json:"definition" yaml:"definition"`
	SavedAt    time.Time  `json:"savedAt" yaml:"saved_at"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty" yaml:"updated_at,omitempty"`
}

// VocabularyDocument is the whole persisted vocabulary, keyed by user ID.
type VocabularyDocument map[string][]VocabularyItem
