// Package cache memoizes analysis results per (document, mode, kind, topic
// phrase). Results are appended to a persistent store and the newest entry
// for a key wins; a retention policy bounds how much history is kept.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"content-analyzer/internal/relevance"
	"content-analyzer/internal/textproc"
)

// MaxPhraseRunes caps the verbatim topic phrase kept with an entry.
const MaxPhraseRunes = 500

// Key identifies one memoized analysis.
type Key struct {
	DocumentID string
	Mode       relevance.Mode
	Kind       relevance.Kind
	// Phrase is the topic phrase as given. Only its normalized form takes
	// part in the key.
	Phrase string
}

// NewKey builds a Key.
func NewKey(documentID string, mode relevance.Mode, kind relevance.Kind, phrase string) Key {
	return Key{DocumentID: documentID, Mode: mode, Kind: kind, Phrase: phrase}
}

// String returns the hex SHA-256 of document|mode|kind|normalized phrase.
func (k Key) String() string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		k.DocumentID,
		k.Mode.String(),
		k.Kind.String(),
		textproc.Normalize(k.Phrase),
	}, "|")))
	return hex.EncodeToString(sum[:])
}

// PhraseHash returns the hex SHA-256 of the normalized phrase.
func PhraseHash(phrase string) string {
	sum := sha256.Sum256([]byte(textproc.Normalize(phrase)))
	return hex.EncodeToString(sum[:])
}

func truncatePhrase(phrase string) string {
	runes := []rune(phrase)
	if len(runes) <= MaxPhraseRunes {
		return phrase
	}
	return string(runes[:MaxPhraseRunes])
}
