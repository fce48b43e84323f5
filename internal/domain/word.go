package domain

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrWordNativeTextEmpty is returned when a word's native-form text is empty.
	ErrWordNativeTextEmpty = errors.New("word native text cannot be empty")

	// ErrWordGlossEmpty is returned when a word's gloss is empty.
	ErrWordGlossEmpty = errors.New("word gloss cannot be empty")

	// ErrWordPartsInvalid is returned when a word's parts breakdown is not valid JSON.
	ErrWordPartsInvalid = errors.New("word parts must be valid JSON")
)

// Word represents a single vocabulary item loaded from the catalog.
// Words are created at vocabulary-load time and are immutable thereafter.
// The optional Parts field holds a structured breakdown of the word
// (e.g. kanji sub-parts) stored as a JSONB structure.
type Word struct {
	ID              uuid.UUID       `json:"id"`
	NativeText      string          `json:"native_text"`
	Transliteration string          `json:"transliteration"`
	Gloss           string          `json:"gloss"`
	Parts           json.RawMessage `json:"parts,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewWord creates a new Word with the given native text, transliteration,
// gloss, and optional structured parts breakdown.
// It generates a new UUID for the word ID and sets the creation timestamp.
// Returns an error if validation fails.
func NewWord(nativeText, transliteration, gloss string, parts json.RawMessage) (*Word, error) {
	word := &Word{
		ID:              uuid.New(),
		NativeText:      nativeText,
		Transliteration: transliteration,
		Gloss:           gloss,
		Parts:           parts,
		CreatedAt:       time.Now().UTC(),
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if w.NativeText == "" {
		return ErrWordNativeTextEmpty
	}

	if w.Gloss == "" {
		return ErrWordGlossEmpty
	}

	// Parts is optional, but must be valid JSON when present
	if len(w.Parts) > 0 {
		var js json.RawMessage
		if err := json.Unmarshal(w.Parts, &js); err != nil {
			return ErrWordPartsInvalid
		}
	}

	return nil
}
