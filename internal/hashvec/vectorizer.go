// Package hashvec builds fixed-size dense feature vectors from text by hashing
// word unigrams, word bigrams and character 4-grams into D slots.
//
// It needs no vocabulary or corpus statistics, so it can run anywhere the text
// and the topic phrase are available. There is no stop-word filter; common
// words are diluted by hashing instead.
package hashvec

import (
	"errors"
	"hash/fnv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gonum.org/v1/gonum/floats"
)

const (
	// DefaultDimensions is the practical default for D.
	DefaultDimensions = 1024

	WordWeight     = 1.0
	BigramWeight   = 0.35
	CharGramWeight = 0.08

	// CharGramSize is the width of the sliding character window.
	CharGramSize = 4

	minTokenLength = 3
)

// ErrInvalidDimensions is returned for a non-positive dimension.
var ErrInvalidDimensions = errors.New("dimensions must be greater than 0")

// Vector is a dense hashed feature vector.
type Vector []float64

// NonZero returns the number of slots with a non-zero weight.
func (v Vector) NonZero() int {
	n := 0
	for _, x := range v {
		if x != 0 {
			n++
		}
	}
	return n
}

// Vectorizer hashes text into vectors of a fixed dimension.
type Vectorizer struct {
	dim int
}

// New creates a Vectorizer with dim slots.
func New(dim int) (*Vectorizer, error) {
	if dim <= 0 {
		return nil, ErrInvalidDimensions
	}
	return &Vectorizer{dim: dim}, nil
}

// Dimensions returns D.
func (v *Vectorizer) Dimensions() int {
	return v.dim
}

// Vectorize builds the feature vector of text. For every token it adds
// WordWeight at hash("w:"+token) and BigramWeight at hash("b:"+token+" "+next);
// for every 4-rune window of the whitespace-collapsed lowercase text with no
// blank at either end it adds CharGramWeight at hash("c:"+gram).
func (v *Vectorizer) Vectorize(text string) Vector {
	vec := make(Vector, v.dim)
	lower := Lower(text)

	tokens := tokenize(lower)
	for i, w := range tokens {
		vec[v.slot("w:"+w)] += WordWeight
		if i+1 < len(tokens) {
			vec[v.slot("b:"+w+" "+tokens[i+1])] += BigramWeight
		}
	}

	runes := []rune(strings.Join(strings.Fields(lower), " "))
	for j := 0; j+CharGramSize <= len(runes); j++ {
		gram := string(runes[j : j+CharGramSize])
		if utf8.RuneCountInString(strings.TrimSpace(gram)) < CharGramSize {
			continue
		}
		vec[v.slot("c:"+gram)] += CharGramWeight
	}

	return vec
}

func (v *Vectorizer) slot(feature string) int {
	return int(Hash32(feature) % uint32(v.dim))
}

// Hash32 is the 32-bit FNV-1a hash of s.
func Hash32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Cosine returns the cosine similarity of two dense vectors over their common
// length. A zero-magnitude vector gives 0.
func Cosine(a, b Vector) float64 {
	n := min(len(a), len(b))
	if n == 0 {
		return 0
	}
	ma := floats.Norm(a[:n], 2)
	mb := floats.Norm(b[:n], 2)
	if ma == 0 || mb == 0 {
		return 0
	}
	return floats.Dot(a[:n], b[:n]) / (ma * mb)
}

// Lower lowercases text with Polish casing rules.
func Lower(text string) string {
	// A Caser is stateful; one per call keeps Lower safe for concurrent use.
	return cases.Lower(language.Polish).String(text)
}

// Tokenize lowercases text and returns its letter/digit/hyphen runs with
// hyphens trimmed, keeping those of at least three runes.
func Tokenize(text string) []string {
	return tokenize(Lower(text))
}

func tokenize(lower string) []string {
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-')
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, "-")
		if utf8.RuneCountInString(w) >= minTokenLength {
			tokens = append(tokens, w)
		}
	}
	return tokens
}
