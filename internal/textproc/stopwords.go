package textproc

// stopWords is the bilingual (Polish + English) function-word table.
// It is built once and never mutated.
var stopWords = newWordSet(
	// Polish
	"i", "w", "na", "z", "do", "nie", "się", "to", "jest", "że", "o", "jak", "ale", "za", "co", "od",
	"po", "tak", "jej", "jego", "te", "ten", "ta", "tym", "tego", "tej", "tych", "był", "była", "było",
	"były", "być", "może", "ich", "go", "mu", "mi", "ci", "nam", "was", "im", "ją", "je", "nas", "ze",
	"są", "by", "już", "tylko", "też", "ma", "czy", "więc", "dla", "gdy", "przed", "przez", "przy",
	"bez", "pod", "nad", "między", "ku", "lub", "albo", "oraz", "a", "u", "we", "tu", "tam", "raz",
	"no", "ani", "bo", "pan", "pani", "jako", "sobie", "który", "która", "które", "których", "którym",
	"którą", "czym", "gdzie", "kiedy", "bardzo", "będzie", "można", "mnie", "mają", "każdy", "inne",
	"innych", "jednak", "tę", "tą", "nimi", "nich", "niego", "niej", "nią", "nim", "jeszcze", "teraz",
	"tutaj", "wtedy", "zawsze", "nigdy", "często", "czasem", "potem", "ponieważ", "więcej", "mniej",
	"dużo", "mało", "każda", "każde",
	// English
	"the", "an", "and", "or", "but", "in", "on", "at", "for", "of", "with", "from", "is", "are",
	"were", "be", "been", "being", "have", "has", "had", "does", "did", "will", "would", "shall",
	"should", "might", "can", "could", "this", "that", "these", "those", "it", "its", "he", "she",
	"they", "you", "me", "him", "her", "us", "them", "my", "your", "his", "our", "their", "not",
	"so", "if", "then", "than", "too", "very", "just", "about", "up", "out", "all", "also",
	"may",
)

type wordSet map[string]struct{}

func newWordSet(words ...string) wordSet {
	set := make(wordSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// IsStopWord reports whether a lowercased token is in the stop-word table.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}

// StopWordCount returns the number of distinct stop words.
func StopWordCount() int {
	return len(stopWords)
}
