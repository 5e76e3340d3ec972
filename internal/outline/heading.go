package outline

import (
	"regexp"
	"strconv"
	"strings"
)

// sectionPattern matches numbered section headings. A third numeric level
// (1.1.1 is not a section) is captured optionally and rejected in
// ClassifySection, since regexp has no negative lookahead.
var sectionPattern = regexp.MustCompile(`^(\d+\.\d+|[A-Z]\.\d+)(\.\d+)?\s+(.*)`)

var chapterNumPattern = regexp.MustCompile(`^Chapter\s+(\d+):\s*(.*)`)

// ClassifyChapter builds a Chapter from an H2 heading's text. The heading
// line number seeds the chapter's provisional content range.
func ClassifyChapter(text string, line int) *Chapter {
	block := ContentBlock{StartLine: line, EndLine: line}

	switch {
	case strings.HasPrefix(text, "Prologue"):
		return &Chapter{Title: text, Kind: KindPrologue, FolderName: "prologue", Content: block}
	case strings.HasPrefix(text, "Introduction"):
		return &Chapter{Title: text, Kind: KindIntroduction, FolderName: "introduction", Content: block}
	}

	if m := chapterNumPattern.FindStringSubmatch(text); m != nil {
		num, _ := strconv.Atoi(m[1])
		return &Chapter{
			Title:         text,
			Kind:          KindChapter,
			FolderName:    "chapter" + m[1],
			Content:       block,
			ChapterNumber: num,
		}
	}

	if rest, ok := strings.CutPrefix(text, "Appendix "); ok {
		letter := appendixLetter(rest)
		folder := "appendix_unknown"
		if letter != "" {
			folder = "appendix" + letter
		}
		return &Chapter{
			Title:          text,
			Kind:           KindAppendix,
			FolderName:     folder,
			Content:        block,
			AppendixLetter: letter,
		}
	}

	// Validation should have rejected anything else; keep parsing anyway.
	return &Chapter{Title: text, Kind: KindChapter, FolderName: "chapter_unknown", Content: block}
}

// appendixLetter extracts the single uppercase identifier from the text after
// "Appendix ", e.g. "A: Title" -> "A", "B.2" -> "B". Returns "" when the
// identifier is not a single letter.
func appendixLetter(rest string) string {
	var base string
	switch {
	case strings.Contains(rest, ":"):
		base = strings.TrimSpace(rest[:strings.Index(rest, ":")])
	case strings.Contains(rest, "."):
		base = strings.TrimSpace(rest[:strings.Index(rest, ".")])
	default:
		base = strings.TrimSpace(rest)
	}
	if len(base) == 1 && base[0] >= 'A' && base[0] <= 'Z' {
		return base
	}
	return ""
}

// ClassifySection builds a Section from an H3 heading's text. Headings
// matching the two-level numbering pattern become numbered sections with a
// sanitized filename; everything else, including three-level numbering, is a
// content heading with no filename.
func ClassifySection(text string, line int) *Section {
	text = strings.TrimSpace(text)
	block := ContentBlock{StartLine: line, EndLine: line}

	if m := sectionPattern.FindStringSubmatch(text); m != nil && m[2] == "" {
		number := m[1]
		title := strings.TrimSpace(m[3])
		if title == "" {
			title = "Section " + number
		}
		return &Section{
			Title:    title,
			Number:   number,
			Content:  block,
			Filename: SanitizeFilename(title),
			Kind:     SectionNumbered,
		}
	}

	return &Section{Title: text, Content: block, Kind: SectionContentHeading}
}
