package relevance

// Paragraph is a qualifying paragraph-level chunk of a document.
// Index is dense and zero-based, assigned after short paragraphs are dropped.
type Paragraph struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
	CharCount int    `json:"char_count"`
}

// WordRelevance is the relevance record of one document term.
type WordRelevance struct {
	Word           string  `json:"word"`
	Count          int     `json:"count"`
	DirectMatch    bool    `json:"direct_match"`
	ContextScore   float64 `json:"context_score"`
	RelevanceScore float64 `json:"relevance_score"`
}

// WordReport is the result of a word-level analysis.
type WordReport struct {
	Mode   Mode   `json:"mode"`
	Phrase string `json:"phrase"`
	// OverallSimilarity is the whole-document similarity to the topic, as a percentage.
	OverallSimilarity float64 `json:"overall_similarity"`
	// TotalUniqueWords counts every scored term, not only the reported ones.
	TotalUniqueWords int             `json:"total_unique_words"`
	HighRelevance    int             `json:"high_relevance"`
	MediumRelevance  int             `json:"medium_relevance"`
	LowRelevance     int             `json:"low_relevance"`
	AverageRelevance float64         `json:"average_relevance"`
	Words            []WordRelevance `json:"words"`
}

// TermCount is a topic term found in a chunk together with its occurrence count.
type TermCount struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// ChunkScore is the similarity of one paragraph to the topic.
type ChunkScore struct {
	Index             int         `json:"index"`
	Text              string      `json:"text"`
	WordCount         int         `json:"word_count"`
	Similarity        float64     `json:"similarity"`
	SimilarityPercent float64     `json:"similarity_percent"`
	TopicTermsFound   []TermCount `json:"topic_terms_found"`
}

// ChunkReport is the result of a paragraph-level analysis.
type ChunkReport struct {
	Mode              Mode         `json:"mode"`
	Phrase            string       `json:"phrase"`
	Chunks            []ChunkScore `json:"chunks"`
	ChunkCount        int          `json:"chunk_count"`
	AverageSimilarity float64      `json:"average_similarity"`
	AveragePercent    float64      `json:"average_percent"`
	MaxPercent        float64      `json:"max_percent"`
	MinPercent        float64      `json:"min_percent"`
}
