// Package content turns stored document bodies (HTML, Markdown or plain text)
// into the plain text, paragraphs and headings that relevance scoring and
// document statistics work on.
package content

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"content-analyzer/internal/relevance"
)

// MinParagraphRunes is the length a paragraph's trimmed text must exceed to
// take part in chunk analysis.
const MinParagraphRunes = 15

// ErrUnsupportedFormat is returned for a format other than html, markdown or
// text.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Format is the markup a document body is written in.
type Format string

// Supported formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat parses a format name. An empty name selects html. "md" and
// "txt" are accepted as aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "html", "htm":
		return FormatHTML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt", "plain":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath guesses a format from a file extension, falling back to text.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return FormatHTML
	case ".md", ".markdown":
		return FormatMarkdown
	default:
		return FormatText
	}
}

// Heading is a section heading found in a document.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Document is the extracted form of a document body.
type Document struct {
	Format Format

	// Text is the tag-free text with entities decoded and whitespace
	// collapsed to single spaces.
	Text string

	// Paragraphs holds the paragraphs long enough for chunk analysis,
	// densely indexed in document order.
	Paragraphs []relevance.Paragraph

	// ParagraphCount counts every non-empty paragraph, including those too
	// short to be analysed.
	ParagraphCount int

	Headings []Heading
}

// Title returns the first level-1 heading, else the first level-2 heading,
// else "".
func (d *Document) Title() string {
	var h2 string
	for _, h := range d.Headings {
		if h.Level == 1 {
			return h.Text
		}
		if h.Level == 2 && h2 == "" {
			h2 = h.Text
		}
	}
	return h2
}

// TitleFromFilename derives a title from a file name by dropping the
// extension and capitalizing each word.
func TitleFromFilename(filename string) string {
	name := filepath.Base(filename)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Extract parses body according to format.
func Extract(format Format, body string) (*Document, error) {
	switch format {
	case FormatHTML:
		return extractHTML(body)
	case FormatMarkdown:
		return extractMarkdown(body)
	case FormatText:
		return extractText(body), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// paragraphs filters candidate texts into analysable paragraphs and returns
// them with the count of non-empty candidates.
func paragraphs(candidates []string) ([]relevance.Paragraph, int) {
	out := make([]relevance.Paragraph, 0, len(candidates))
	nonEmpty := 0
	for _, c := range candidates {
		text := collapseSpace(c)
		if text == "" {
			continue
		}
		nonEmpty++
		n := utf8.RuneCountInString(text)
		if n <= MinParagraphRunes {
			continue
		}
		out = append(out, relevance.Paragraph{
			Index:     len(out),
			Text:      text,
			WordCount: len(strings.Fields(text)),
			CharCount: n,
		})
	}
	return out, nonEmpty
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
