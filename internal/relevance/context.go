package relevance

import "content-analyzer/internal/textproc"

const (
	// ContextRadius is how many positions on each side of an occurrence are
	// gathered into a term's context.
	ContextRadius = 5

	// MaxContextTokens caps the context tokens collected for one term.
	// Tokens past the cap are dropped silently; this bounds the cost of
	// documents that repeat a term thousands of times.
	MaxContextTokens = 1500
)

// tokenStream is a positional view of a document: every split field in its
// original position, cleaned, with "" standing in for filtered fields.
type tokenStream struct {
	tokens    []string
	positions map[string][]int
	order     []string
}

func newTokenStream(fields []string) *tokenStream {
	s := &tokenStream{
		tokens:    make([]string, len(fields)),
		positions: make(map[string][]int),
	}
	for i, f := range fields {
		w, ok := textproc.Clean(f)
		if !ok {
			continue
		}
		s.tokens[i] = w
		if _, seen := s.positions[w]; !seen {
			s.order = append(s.order, w)
		}
		s.positions[w] = append(s.positions[w], i)
	}
	return s
}

// filtered returns the surviving tokens in document order.
func (s *tokenStream) filtered() []string {
	out := make([]string, 0, len(s.tokens))
	for _, t := range s.tokens {
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// context builds the TF vector of the surviving tokens within ContextRadius
// of each occurrence, skipping the occurrence itself.
func (s *tokenStream) context(occurrences []int) Vector {
	collected := make([]string, 0, min(len(occurrences)*2*ContextRadius, MaxContextTokens))
	for _, p := range occurrences {
		lo := max(0, p-ContextRadius)
		hi := min(len(s.tokens)-1, p+ContextRadius)
		for j := lo; j <= hi; j++ {
			if j == p || s.tokens[j] == "" {
				continue
			}
			if len(collected) == MaxContextTokens {
				return TermFrequency(collected)
			}
			collected = append(collected, s.tokens[j])
		}
	}
	return TermFrequency(collected)
}

// ContextVector returns the context vector of target over a document's split
// fields (see textproc.Split). Only tokens that survive textproc.Clean can be
// targets; anything else has no occurrences and yields an empty vector.
func ContextVector(fields []string, target string) Vector {
	s := newTokenStream(fields)
	return s.context(s.positions[target])
}
