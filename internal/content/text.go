package content

func extractText(body string) *Document {
	paras, count := paragraphs(blankLine.Split(body, -1))
	return &Document{
		Format:         FormatText,
		Text:           collapseSpace(body),
		Paragraphs:     paras,
		ParagraphCount: count,
	}
}
