package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"content-analyzer/internal/content"
	"content-analyzer/internal/hashvec"
	"content-analyzer/internal/relevance"
)

// scoringFlags are the flags of the analysis subcommands.
type scoringFlags struct {
	phrase     string
	mode       string
	dimensions int
	workers    int
}

func (f *scoringFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.phrase, "phrase", "p", "", "topic phrase (required)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", string(relevance.ModeServer), "scoring pipeline: server or client")
	cmd.Flags().IntVar(&f.dimensions, "dimensions", hashvec.DefaultDimensions, "hashed vector size for client mode")
	cmd.Flags().IntVar(&f.workers, "workers", 0, "max scoring goroutines (default: number of CPUs)")
	_ = cmd.MarkFlagRequired("phrase")
}

func (f *scoringFlags) scorer() (relevance.Scorer, error) {
	if strings.TrimSpace(f.phrase) == "" {
		return nil, fmt.Errorf("--phrase cannot be empty")
	}
	if f.dimensions <= 0 {
		return nil, fmt.Errorf("--dimensions must be greater than 0")
	}
	mode, err := relevance.ParseMode(f.mode)
	if err != nil {
		return nil, err
	}
	return relevance.NewScorer(mode, relevance.Options{Workers: f.workers, Dimensions: f.dimensions})
}

func newWordsCmd(opts *options) *cobra.Command {
	flags := &scoringFlags{}
	cmd := &cobra.Command{
		Use:   "words",
		Short: "Score every term of a document against a topic phrase",
		Example: `  analyzer words --file post.html --phrase "content marketing"
  analyzer words -f notes.md -p "seo" --mode client -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, err := flags.scorer()
			if err != nil {
				return err
			}
			doc, err := loadDocument(opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, scorer.Words(doc.Text, strings.TrimSpace(flags.phrase)))
		},
	}
	flags.register(cmd)
	return cmd
}

func newChunksCmd(opts *options) *cobra.Command {
	flags := &scoringFlags{}
	cmd := &cobra.Command{
		Use:     "chunks",
		Short:   "Score every paragraph of a document against a topic phrase",
		Example: `  analyzer chunks --file post.html --phrase "content marketing"`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scorer, err := flags.scorer()
			if err != nil {
				return err
			}
			doc, err := loadDocument(opts)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, scorer.Chunks(doc.Paragraphs, strings.TrimSpace(flags.phrase)))
		},
	}
	flags.register(cmd)
	return cmd
}

// statsReport is the output of the stats command.
type statsReport struct {
	Title      string                `json:"title"`
	Format     content.Format        `json:"format"`
	Stats      content.Stats         `json:"stats"`
	Paragraphs []relevance.Paragraph `json:"paragraphs"`
}

func newStatsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print a document's statistics and paragraphs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := loadDocument(opts)
			if err != nil {
				return err
			}
			title := doc.Title()
			if title == "" {
				title = content.TitleFromFilename(opts.file)
			}
			return writeOutput(cmd.OutOrStdout(), opts.output, statsReport{
				Title:      title,
				Format:     doc.Format,
				Stats:      content.ComputeStats(doc),
				Paragraphs: doc.Paragraphs,
			})
		},
	}
}

func loadDocument(opts *options) (*content.Document, error) {
	body, err := os.ReadFile(opts.file)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	format := content.FormatFromPath(opts.file)
	if opts.format != "" {
		if format, err = content.ParseFormat(opts.format); err != nil {
			return nil, err
		}
	}
	return content.Extract(format, string(body))
}
