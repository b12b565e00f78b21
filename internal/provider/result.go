// Package provider holds the provider-neutral result types returned by
// external dictionary adapters.
package provider

// DictionaryResult is the structured result from a dictionary API provider.
// Multiple upstream entries for the same word are merged into one result.
type DictionaryResult struct {
	Word string
	// Phonetic is the headline transcription, when the provider has one.
	Phonetic       string
	Senses         []SenseResult
	Pronunciations []PronunciationResult
	// Origins holds etymology notes in upstream order.
	Origins  []string
	Synonyms []string
	Antonyms []string
}

// SenseResult represents a single word sense from an external dictionary.
type SenseResult struct {
	Definition   string
	PartOfSpeech *string
	Examples     []string
}

// PronunciationResult represents pronunciation data from an external dictionary.
type PronunciationResult struct {
	Transcription *string
	AudioURL      *string
	Region        *string
}

// FirstTranscription returns the first non-empty pronunciation
// transcription, or "".
func (r *DictionaryResult) FirstTranscription() string {
	for _, p := range r.Pronunciations {
		if p.Transcription != nil && *p.Transcription != "" {
			return *p.Transcription
		}
	}
	return ""
}
