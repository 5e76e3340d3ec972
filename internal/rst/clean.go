package rst

import (
	"regexp"
	"strings"

	"github.com/dgallion1/rstbook/internal/outline"
)

var (
	numberPrefix  = regexp.MustCompile(`^(?:\d+(?:\.\d+)*\s*:?\s*|[A-Z]\.\d+(?:\.\d+)*\s*:?\s*|:\s*)`)
	underlineRow  = regexp.MustCompile(`^[=\-]+$`)
	dashUnderline = regexp.MustCompile(`^-+$`)
)

// CleanChapterTitle returns the heading text used for a chapter's generated
// title. "Chapter N: " and "Appendix X: " prefixes are stripped; Introduction
// and Prologue titles are kept verbatim so their front-matter wording
// survives.
func CleanChapterTitle(ch *outline.Chapter) string {
	switch ch.Kind {
	case outline.KindChapter:
		if rest, ok := strings.CutPrefix(ch.Title, "Chapter "); ok {
			if _, after, found := strings.Cut(rest, ":"); found {
				return strings.TrimSpace(after)
			}
			return strings.TrimSpace(rest)
		}
	case outline.KindAppendix:
		if rest, ok := strings.CutPrefix(ch.Title, "Appendix "); ok {
			if _, after, found := strings.Cut(rest, ":"); found {
				return strings.TrimSpace(after)
			}
			return strings.TrimSpace(rest)
		}
	}
	return ch.Title
}

// CleanSectionTitle strips a leading section number and any leading colon:
// "1.1 Title", "2.1: Title", "A.1 Title", and ": Title" all become "Title".
func CleanSectionTitle(title string) string {
	return strings.TrimSpace(numberPrefix.ReplaceAllString(title, ""))
}

// FilterChapterHeading removes the chapter's own heading line from a content
// block so the external converter cannot re-emit it as a duplicate. Matches
// the bare title and its "#"/"##" forms, plus a trailing underline row.
func FilterChapterHeading(content, chapterTitle string) string {
	title := strings.TrimSpace(chapterTitle)
	var kept []string
	skipUnderline := false

	for _, line := range strings.Split(content, "\n") {
		s := strings.TrimSpace(line)
		if s == title || s == "# "+title || s == "## "+title {
			skipUnderline = true
			continue
		}
		if skipUnderline && underlineRow.MatchString(s) {
			skipUnderline = false
			continue
		}
		skipUnderline = false
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// FilterSectionHeading removes the section's own heading line from a content
// block. The stored section title is the cleaned form, so numbered variants
// like "### 1.1 Title" are matched by suffix as well.
func FilterSectionHeading(content, sectionTitle string) string {
	title := strings.TrimSpace(sectionTitle)
	title = strings.TrimSpace(strings.TrimLeft(title, "#"))

	var kept []string
	skipUnderline := false

	for _, line := range strings.Split(content, "\n") {
		s := strings.TrimSpace(line)

		if s == title || s == "# "+title || s == "## "+title || s == "### "+title {
			skipUnderline = true
			continue
		}
		if title != "" && headingMarker(s) && strings.HasSuffix(s, " "+title) {
			skipUnderline = true
			continue
		}
		if skipUnderline && dashUnderline.MatchString(s) {
			skipUnderline = false
			continue
		}
		skipUnderline = false
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func headingMarker(s string) bool {
	return strings.HasPrefix(s, "# ") || strings.HasPrefix(s, "## ") || strings.HasPrefix(s, "### ")
}

// Normalize strips trailing whitespace per line and unifies line endings,
// the canonical form used to decide whether a write would change a file.
func Normalize(content string) string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return strings.Join(lines, "\n")
}

// RemoveAnchors drops converter-emitted ".. _name:" anchor lines. Pandoc adds
// one above every heading, which collides when chapters share section names.
func RemoveAnchors(content string) string {
	if strings.TrimSpace(content) == "" {
		return content
	}
	var kept []string
	for _, line := range strings.Split(content, "\n") {
		s := strings.TrimSpace(line)
		if strings.HasPrefix(s, ".. _") && strings.HasSuffix(s, ":") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
