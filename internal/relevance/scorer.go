package relevance

import (
	"fmt"

	"content-analyzer/internal/hashvec"
)

// Scorer runs one of the two scoring pipelines. Both produce reports with the
// same schema, scale and band thresholds; their numbers are not expected to
// agree exactly.
type Scorer interface {
	// Mode returns the pipeline's mode.
	Mode() Mode
	// Words scores the terms of a plain-text document against a topic phrase.
	Words(text, phrase string) *WordReport
	// Chunks scores each paragraph against a topic phrase.
	Chunks(paragraphs []Paragraph, phrase string) *ChunkReport
}

// Options tune a Scorer. Zero values select defaults.
type Options struct {
	// Workers bounds the goroutines used for per-term and per-chunk scoring.
	Workers int
	// Dimensions is D for the client pipeline's hashed vectors.
	Dimensions int
}

func (o Options) withDefaults() Options {
	if o.Workers <= 0 {
		o.Workers = defaultWorkers()
	}
	if o.Dimensions <= 0 {
		o.Dimensions = hashvec.DefaultDimensions
	}
	return o
}

// NewScorer returns the Scorer for mode.
func NewScorer(mode Mode, opts Options) (Scorer, error) {
	opts = opts.withDefaults()
	switch mode {
	case ModeServer:
		return &serverScorer{workers: opts.Workers}, nil
	case ModeClient:
		vectorizer, err := hashvec.New(opts.Dimensions)
		if err != nil {
			return nil, err
		}
		return &clientScorer{vectorizer: vectorizer, workers: opts.Workers}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
}

// AnalyzeWords scores a document's terms with the pipeline for mode.
func AnalyzeWords(text, phrase string, mode Mode, opts Options) (*WordReport, error) {
	s, err := NewScorer(mode, opts)
	if err != nil {
		return nil, err
	}
	return s.Words(text, phrase), nil
}

// AnalyzeChunks scores a document's paragraphs with the pipeline for mode.
func AnalyzeChunks(paragraphs []Paragraph, phrase string, mode Mode, opts Options) (*ChunkReport, error) {
	s, err := NewScorer(mode, opts)
	if err != nil {
		return nil, err
	}
	return s.Chunks(paragraphs, phrase), nil
}
