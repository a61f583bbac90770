package relevance

import (
	"strings"

	"content-analyzer/internal/hashvec"
)

// MaxClientContextTokens caps the context assembled per term in client mode.
const MaxClientContextTokens = 200

// candidateStopWords keeps the most common function words out of the client
// pipeline's candidate list. Vectorization itself is unfiltered.
var candidateStopWords = map[string]struct{}{
	"który": {}, "która": {}, "które": {}, "oraz": {}, "ponieważ": {}, "bardzo": {}, "więcej": {},
	"mniej": {}, "przez": {}, "przed": {}, "między": {}, "tylko": {}, "jest": {}, "było": {},
	"była": {}, "były": {}, "będzie": {}, "można": {}, "their": {}, "this": {}, "that": {},
	"with": {}, "from": {}, "have": {}, "has": {}, "had": {}, "will": {}, "would": {},
	"shall": {}, "should": {},
}

// clientScorer approximates the server pipeline with hashed feature vectors:
// topic, document, paragraphs and per-term context strings are all vectorized
// the same way and compared by cosine.
type clientScorer struct {
	vectorizer *hashvec.Vectorizer
	workers    int
}

func (s *clientScorer) Mode() Mode {
	return ModeClient
}

func (s *clientScorer) Words(text, phrase string) *WordReport {
	topicVec := s.vectorizer.Vectorize(phrase)
	overall := round(hashvec.Cosine(topicVec, s.vectorizer.Vectorize(text)), 4)

	words := hashvec.Tokenize(text)
	positions := make(map[string][]int)
	var order []string
	for i, w := range words {
		if _, stop := candidateStopWords[w]; stop {
			continue
		}
		if _, seen := positions[w]; !seen {
			order = append(order, w)
		}
		positions[w] = append(positions[w], i)
	}

	phraseTerms := make(map[string]bool)
	for _, w := range hashvec.Tokenize(phrase) {
		phraseTerms[w] = true
	}

	terms := rankTerms(order, func(t string) int {
		return len(positions[t])
	})

	records := make([]WordRelevance, len(terms))
	forEach(s.workers, len(terms), func(i int) {
		tc := terms[i]
		context := contextString(words, positions[tc.term])
		similarity := round(hashvec.Cosine(topicVec, s.vectorizer.Vectorize(context)), 4)
		direct := phraseTerms[tc.term]
		records[i] = WordRelevance{
			Word:           tc.term,
			Count:          tc.count,
			DirectMatch:    direct,
			ContextScore:   Percent(similarity),
			RelevanceScore: RelevanceScore(direct, similarity),
		}
	})

	return summarizeWords(ModeClient, phrase, overall, records)
}

func (s *clientScorer) Chunks(paragraphs []Paragraph, phrase string) *ChunkReport {
	topicVec := s.vectorizer.Vectorize(phrase)

	var highlight []string
	seen := make(map[string]bool)
	for _, w := range hashvec.Tokenize(phrase) {
		if !seen[w] {
			seen[w] = true
			highlight = append(highlight, w)
		}
	}

	results := make([]ChunkScore, len(paragraphs))
	forEach(s.workers, len(paragraphs), func(i int) {
		p := paragraphs[i]
		similarity := round(hashvec.Cosine(topicVec, s.vectorizer.Vectorize(p.Text)), 4)
		results[i] = ChunkScore{
			Index:             p.Index,
			Text:              p.Text,
			WordCount:         p.WordCount,
			Similarity:        similarity,
			SimilarityPercent: Percent(similarity),
			TopicTermsFound:   countClientTerms(p.Text, highlight),
		}
	})

	return summarizeChunks(ModeClient, phrase, results)
}

// contextString joins the unfiltered words within ContextRadius of each
// occurrence, stopping at MaxClientContextTokens.
func contextString(words []string, occurrences []int) string {
	ctx := make([]string, 0, MaxClientContextTokens)
	for _, p := range occurrences {
		lo := max(0, p-ContextRadius)
		hi := min(len(words)-1, p+ContextRadius)
		for j := lo; j <= hi; j++ {
			if j == p {
				continue
			}
			if len(ctx) == MaxClientContextTokens {
				return strings.Join(ctx, " ")
			}
			ctx = append(ctx, words[j])
		}
	}
	return strings.Join(ctx, " ")
}

func countClientTerms(text string, terms []string) []TermCount {
	lower := hashvec.Lower(text)
	found := make([]TermCount, 0, len(terms))
	for _, term := range terms {
		if n := strings.Count(lower, term); n > 0 {
			found = append(found, TermCount{Term: term, Count: n})
		}
	}
	return found
}
