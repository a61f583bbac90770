package relevance

import "content-analyzer/internal/textproc"

// serverScorer scores with sparse TF vectors. A term's relevance combines a
// literal match against the topic vector with the similarity between the topic
// and the term's context window.
type serverScorer struct {
	workers int
}

func (s *serverScorer) Mode() Mode {
	return ModeServer
}

func (s *serverScorer) Words(text, phrase string) *WordReport {
	topic := NewTopic(phrase)
	stream := newTokenStream(textproc.Split(text))

	terms := rankTerms(stream.order, func(t string) int {
		return len(stream.positions[t])
	})

	records := make([]WordRelevance, len(terms))
	forEach(s.workers, len(terms), func(i int) {
		tc := terms[i]
		direct := topic.Contains(tc.term)
		similarity := Cosine(topic.Vector, stream.context(stream.positions[tc.term]))
		records[i] = WordRelevance{
			Word:           tc.term,
			Count:          tc.count,
			DirectMatch:    direct,
			ContextScore:   Percent(similarity),
			RelevanceScore: RelevanceScore(direct, similarity),
		}
	})

	overall := Cosine(topic.Vector, TermFrequency(stream.filtered()))
	return summarizeWords(ModeServer, phrase, overall, records)
}

func (s *serverScorer) Chunks(paragraphs []Paragraph, phrase string) *ChunkReport {
	topic := NewTopic(phrase)
	highlight := topic.SingleWordTerms()

	results := make([]ChunkScore, len(paragraphs))
	forEach(s.workers, len(paragraphs), func(i int) {
		p := paragraphs[i]
		similarity := Cosine(topic.Vector, TextVector(p.Text))
		results[i] = ChunkScore{
			Index:             p.Index,
			Text:              p.Text,
			WordCount:         p.WordCount,
			Similarity:        similarity,
			SimilarityPercent: Percent(similarity),
			TopicTermsFound:   countTerms(p.Text, highlight),
		}
	})

	return summarizeChunks(ModeServer, phrase, results)
}
