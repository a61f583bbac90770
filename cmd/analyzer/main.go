// Package main provides the analyzer CLI, which scores local files against a
// topic phrase without a server or cache.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by every subcommand.
type options struct {
	file   string
	format string
	output string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "analyzer",
		Short: "Topic-relevance analysis for local documents",
		Long: `analyzer scores how relevant a document is to a topic phrase.

Documents may be HTML, Markdown or plain text; the format defaults from the
file extension. Results are printed as JSON or YAML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.file, "file", "f", "", "document to analyze (required)")
	root.PersistentFlags().StringVar(&opts.format, "format", "", "html, markdown or text (default: from file extension)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	_ = root.MarkPersistentFlagRequired("file")

	root.AddCommand(
		newWordsCmd(opts),
		newChunksCmd(opts),
		newStatsCmd(opts),
	)
	return root
}
