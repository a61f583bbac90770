package content

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var blankLine = regexp.MustCompile(`\n[ \t\r\f\v]*\n`)

// skipped elements contribute no text.
var skipped = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Head:     true,
}

// containers each hold one paragraph candidate.
var containers = map[atom.Atom]bool{
	atom.P:          true,
	atom.Li:         true,
	atom.Blockquote: true,
	atom.Pre:        true,
	atom.Td:         true,
	atom.Th:         true,
	atom.Dd:         true,
	atom.Dt:         true,
	atom.Figcaption: true,
}

var headingLevels = map[atom.Atom]int{
	atom.H1: 1, atom.H2: 2, atom.H3: 3, atom.H4: 4, atom.H5: 5, atom.H6: 6,
}

// blocks end a run of loose text.
var blocks = map[atom.Atom]bool{
	atom.Html: true, atom.Body: true, atom.Div: true, atom.Section: true,
	atom.Article: true, atom.Main: true, atom.Header: true, atom.Footer: true,
	atom.Nav: true, atom.Aside: true, atom.Ul: true, atom.Ol: true, atom.Dl: true,
	atom.Table: true, atom.Thead: true, atom.Tbody: true, atom.Tfoot: true,
	atom.Tr: true, atom.Figure: true, atom.Form: true, atom.Hr: true,
	atom.Details: true, atom.Summary: true, atom.Address: true, atom.Fieldset: true,
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

func extractMarkdown(body string) (*Document, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(body), &buf); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}
	doc, err := extractHTML(buf.String())
	if err != nil {
		return nil, err
	}
	doc.Format = FormatMarkdown
	return doc, nil
}

func extractHTML(body string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	w := &htmlWalker{}
	w.walk(root)
	w.flushLoose()

	paras, count := paragraphs(w.candidates)
	return &Document{
		Format:         FormatHTML,
		Text:           collapseSpace(w.text.String()),
		Paragraphs:     paras,
		ParagraphCount: count,
		Headings:       w.headings,
	}, nil
}

type htmlWalker struct {
	text       strings.Builder
	loose      strings.Builder
	candidates []string
	headings   []Heading
}

func (w *htmlWalker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text.WriteString(n.Data)
		w.loose.WriteString(n.Data)
		return
	case html.ElementNode:
		w.element(n)
		return
	case html.DocumentNode:
		w.children(n)
	}
}

func (w *htmlWalker) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *htmlWalker) element(n *html.Node) {
	switch {
	case skipped[n.DataAtom]:
		return

	case headingLevels[n.DataAtom] > 0:
		w.flushLoose()
		text := nodeText(n)
		if t := collapseSpace(text); t != "" {
			w.headings = append(w.headings, Heading{Level: headingLevels[n.DataAtom], Text: t})
		}
		w.writeBlock(text)

	case containers[n.DataAtom]:
		w.flushLoose()
		if hasContainer(n) {
			w.children(n)
			w.flushLoose()
			return
		}
		text := nodeText(n)
		w.candidates = append(w.candidates, text)
		w.writeBlock(text)

	case blocks[n.DataAtom]:
		w.flushLoose()
		w.text.WriteByte(' ')
		w.children(n)
		w.flushLoose()
		w.text.WriteByte(' ')

	case n.DataAtom == atom.Br:
		w.text.WriteByte(' ')
		w.loose.WriteByte('\n')

	default:
		w.children(n)
	}
}

func (w *htmlWalker) writeBlock(text string) {
	w.text.WriteByte(' ')
	w.text.WriteString(text)
	w.text.WriteByte(' ')
}

// flushLoose turns the pending loose text into blank-line separated
// candidates.
func (w *htmlWalker) flushLoose() {
	if w.loose.Len() == 0 {
		return
	}
	for _, part := range blankLine.Split(w.loose.String(), -1) {
		if strings.TrimSpace(part) != "" {
			w.candidates = append(w.candidates, part)
		}
	}
	w.loose.Reset()
}

func hasContainer(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if containers[c.DataAtom] || hasContainer(c) {
			return true
		}
	}
	return false
}

// nodeText returns the text below n, with block boundaries turned into spaces.
func nodeText(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if skipped[n.DataAtom] {
				return
			}
			if n.DataAtom == atom.Br || blocks[n.DataAtom] || containers[n.DataAtom] {
				b.WriteByte(' ')
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
