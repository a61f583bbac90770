package relevance

import (
	"maps"
	"slices"
	"strings"
	"unicode/utf8"

	"content-analyzer/internal/textproc"
)

const (
	// BigramBoost is added to the topic vector for every adjacent word pair of
	// the phrase. It is additive and ignores normalization, so a topic vector
	// with bigrams no longer sums to 1.
	BigramBoost = 0.35

	minBigramLength = 5
)

// Vector maps a term (a unigram, or two words joined by one space) to a
// non-negative weight.
type Vector map[string]float64

// TermFrequency counts already-filtered tokens and divides each count by the
// total, so the weights sum to 1. No tokens yields an empty vector.
func TermFrequency(tokens []string) Vector {
	tf := make(Vector)
	if len(tokens) == 0 {
		return tf
	}
	for _, t := range tokens {
		tf[t]++
	}
	total := float64(len(tokens))
	for t, c := range tf {
		tf[t] = c / total
	}
	return tf
}

// TextVector tokenizes text and returns its TF vector.
func TextVector(text string) Vector {
	return TermFrequency(textproc.Tokenize(text))
}

// Terms returns the vector's terms in lexical order.
func (v Vector) Terms() []string {
	return slices.Sorted(maps.Keys(v))
}

// Topic is the vector of a topic phrase with its terms in first-seen order:
// unigrams first, then bigrams.
type Topic struct {
	Phrase string
	Vector Vector
	Terms  []string
}

// NewTopic builds the topic vector of phrase: the TF vector of its filtered
// tokens plus a BigramBoost for each adjacent pair of its unfiltered words
// whose joined form has at least five runes.
func NewTopic(phrase string) *Topic {
	tokens := textproc.Tokenize(phrase)
	topic := &Topic{
		Phrase: phrase,
		Vector: TermFrequency(tokens),
	}

	seen := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		if !seen[t] {
			seen[t] = true
			topic.Terms = append(topic.Terms, t)
		}
	}

	words := textproc.Split(phrase)
	for i := 0; i+1 < len(words); i++ {
		bigram := strings.Trim(words[i], "-") + " " + strings.Trim(words[i+1], "-")
		if utf8.RuneCountInString(bigram) < minBigramLength {
			continue
		}
		if _, ok := topic.Vector[bigram]; !ok {
			topic.Terms = append(topic.Terms, bigram)
		}
		topic.Vector[bigram] += BigramBoost
	}

	return topic
}

// Contains reports whether term is literally a key of the topic vector.
func (t *Topic) Contains(term string) bool {
	_, ok := t.Vector[term]
	return ok
}

// SingleWordTerms returns the unigram terms in first-seen order.
// Bigrams take part in similarity only and are never highlighted.
func (t *Topic) SingleWordTerms() []string {
	out := make([]string, 0, len(t.Terms))
	for _, term := range t.Terms {
		if !strings.Contains(term, " ") {
			out = append(out, term)
		}
	}
	return out
}
