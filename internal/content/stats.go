package content

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"content-analyzer/internal/textproc"
)

const (
	// WordsPerMinute is the reading speed behind ReadingTimeMinutes.
	WordsPerMinute = 200

	// MaxEntities caps the entity list.
	MaxEntities = 150

	minSentenceRunes = 2
)

var (
	sentenceEnd   = regexp.MustCompile(`[.!?]+(?:\s|$)`)
	standaloneNum = regexp.MustCompile(`\b\d+\b`)
)

// Stats describes a document's size and structure.
type Stats struct {
	CharCount          int          `json:"char_count"`
	CharCountNoSpaces  int          `json:"char_count_no_spaces"`
	WordCount          int          `json:"word_count"`
	SentenceCount      int          `json:"sentence_count"`
	ParagraphCount     int          `json:"paragraph_count"`
	ReadingTimeMinutes int          `json:"reading_time_minutes"`
	Headings           HeadingStats `json:"headings"`
	Entities           []Entity     `json:"entities"`
	ParagraphWords     Distribution `json:"paragraph_words"`
}

// HeadingStats lists heading texts per level.
type HeadingStats struct {
	H1    []string `json:"h1"`
	H2    []string `json:"h2"`
	H3    []string `json:"h3"`
	H4    []string `json:"h4"`
	H5    []string `json:"h5"`
	H6    []string `json:"h6"`
	Total int      `json:"total"`
}

// Entity is a frequent term of a document. Frequency is the term's share of
// all kept tokens as a percentage.
type Entity struct {
	Term      string  `json:"term"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// Distribution summarizes a set of counts.
type Distribution struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// ComputeStats computes the statistics of an extracted document.
func ComputeStats(doc *Document) Stats {
	words := strings.Fields(doc.Text)

	stats := Stats{
		CharCount:          utf8.RuneCountInString(doc.Text),
		CharCountNoSpaces:  utf8.RuneCountInString(strings.Map(dropSpace, doc.Text)),
		WordCount:          len(words),
		SentenceCount:      countSentences(doc.Text),
		ParagraphCount:     doc.ParagraphCount,
		ReadingTimeMinutes: max(1, int(math.Round(float64(len(words))/WordsPerMinute))),
		Headings:           headingStats(doc.Headings),
		Entities:           extractEntities(doc.Text),
	}

	counts := make([]int, len(doc.Paragraphs))
	for i, p := range doc.Paragraphs {
		counts[i] = p.WordCount
	}
	stats.ParagraphWords = distribution(counts)

	return stats
}

func dropSpace(r rune) rune {
	if unicode.IsSpace(r) {
		return -1
	}
	return r
}

func countSentences(text string) int {
	n := 0
	for _, s := range sentenceEnd.Split(text, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(s)) > minSentenceRunes {
			n++
		}
	}
	return n
}

func headingStats(headings []Heading) HeadingStats {
	hs := HeadingStats{
		H1: []string{}, H2: []string{}, H3: []string{},
		H4: []string{}, H5: []string{}, H6: []string{},
	}
	levels := []*[]string{&hs.H1, &hs.H2, &hs.H3, &hs.H4, &hs.H5, &hs.H6}
	for _, h := range headings {
		if h.Level < 1 || h.Level > len(levels) {
			continue
		}
		*levels[h.Level-1] = append(*levels[h.Level-1], h.Text)
		hs.Total++
	}
	return hs
}

// extractEntities ranks the filtered terms of text by count, ties in order of
// first occurrence. Standalone numbers are not terms.
func extractEntities(text string) []Entity {
	tokens := textproc.Tokenize(standaloneNum.ReplaceAllString(textproc.Lower(text), ""))

	counts := make(map[string]int)
	var order []string
	for _, t := range tokens {
		if counts[t] == 0 {
			order = append(order, t)
		}
		counts[t]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > MaxEntities {
		order = order[:MaxEntities]
	}

	entities := make([]Entity, len(order))
	for i, t := range order {
		entities[i] = Entity{
			Term:      t,
			Count:     counts[t],
			Frequency: math.Round(float64(counts[t])/float64(len(tokens))*100*100) / 100,
		}
	}
	return entities
}

// distribution computes min, max, mean and p95 of counts.
func distribution(counts []int) Distribution {
	if len(counts) == 0 {
		return Distribution{}
	}

	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	sum := 0
	for _, c := range counts {
		sum += c
	}
	mean := float64(sum) / float64(len(counts))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return Distribution{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
