package relevance

import (
	"math"
	"sort"
	"strings"

	"content-analyzer/internal/textproc"
)

const (
	// MaxTerms caps how many distinct terms of a document are scored, taken
	// by descending frequency. The long tail is dropped silently to keep the
	// worst case bounded.
	MaxTerms = 600

	// MaxReportedWords caps the words list of a report. Aggregates still
	// cover every scored term.
	MaxReportedWords = 200

	DirectMatchWeight = 0.55
	ContextWeight     = 0.45

	// HighBandThreshold and MediumBandThreshold split relevance scores into
	// high (>= 40), medium ([15, 40)) and low (< 15).
	HighBandThreshold   = 40.0
	MediumBandThreshold = 15.0
)

// Band names.
const (
	BandHigh   = "high"
	BandMedium = "medium"
	BandLow    = "low"
)

// RelevanceScore blends a direct phrase match with the context similarity
// (0..1) and returns a 0..100 percentage with one decimal.
func RelevanceScore(directMatch bool, contextSimilarity float64) float64 {
	var dm float64
	if directMatch {
		dm = 1
	}
	score := round(math.Min(1, dm*DirectMatchWeight+contextSimilarity*ContextWeight), 4)
	return round(score*100, 1)
}

// Band classifies a relevance score.
func Band(score float64) string {
	switch {
	case score >= HighBandThreshold:
		return BandHigh
	case score >= MediumBandThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

type termCount struct {
	term  string
	count int
}

// rankTerms orders distinct terms by count descending, keeping first-seen
// order among equal counts, and keeps at most MaxTerms.
func rankTerms(order []string, count func(term string) int) []termCount {
	ranked := make([]termCount, len(order))
	for i, t := range order {
		ranked[i] = termCount{term: t, count: count(t)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].count > ranked[j].count
	})
	if len(ranked) > MaxTerms {
		ranked = ranked[:MaxTerms]
	}
	return ranked
}

// summarizeWords aggregates records given in frequency-rank order. The
// records are re-sorted by relevance, stable, so equal scores keep their
// frequency rank.
func summarizeWords(mode Mode, phrase string, overall float64, records []WordRelevance) *WordReport {
	report := &WordReport{
		Mode:              mode,
		Phrase:            phrase,
		OverallSimilarity: Percent(overall),
		TotalUniqueWords:  len(records),
	}

	var sum float64
	for _, r := range records {
		sum += r.RelevanceScore
		switch Band(r.RelevanceScore) {
		case BandHigh:
			report.HighRelevance++
		case BandMedium:
			report.MediumRelevance++
		default:
			report.LowRelevance++
		}
	}
	if len(records) > 0 {
		report.AverageRelevance = round(sum/float64(len(records)), 1)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].RelevanceScore > records[j].RelevanceScore
	})
	n := min(len(records), MaxReportedWords)
	report.Words = make([]WordRelevance, n)
	copy(report.Words, records[:n])

	return report
}

// summarizeChunks sorts chunk scores by similarity, stable on input order,
// and computes the aggregates. With no chunks every aggregate is 0.
func summarizeChunks(mode Mode, phrase string, results []ChunkScore) *ChunkReport {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	report := &ChunkReport{
		Mode:       mode,
		Phrase:     phrase,
		Chunks:     results,
		ChunkCount: len(results),
	}
	if report.Chunks == nil {
		report.Chunks = []ChunkScore{}
	}
	if len(results) == 0 {
		return report
	}

	var sum float64
	report.MaxPercent = results[0].SimilarityPercent
	report.MinPercent = results[0].SimilarityPercent
	for _, r := range results {
		sum += r.Similarity
		report.MaxPercent = math.Max(report.MaxPercent, r.SimilarityPercent)
		report.MinPercent = math.Min(report.MinPercent, r.SimilarityPercent)
	}
	avg := sum / float64(len(results))
	report.AverageSimilarity = round(avg, 4)
	report.AveragePercent = round(avg*100, 1)

	return report
}

// countTerms counts non-overlapping literal occurrences of each term in the
// lowercased text and returns the terms that occur, in the given order.
func countTerms(text string, terms []string) []TermCount {
	lower := textproc.Lower(text)
	found := make([]TermCount, 0, len(terms))
	for _, term := range terms {
		if term == "" {
			continue
		}
		if n := strings.Count(lower, term); n > 0 {
			found = append(found, TermCount{Term: term, Count: n})
		}
	}
	return found
}
