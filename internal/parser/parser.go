// Package parser builds the in-memory outline tree from a Markdown document:
// title, introduction content, and chapters with their numbered sections.
// Content boundaries are resolved against the heading event list up front, so
// every block is a single slice of the source rather than the product of
// incremental mutation.
package parser

import (
	"errors"

	"github.com/dgallion1/rstbook/internal/markdown"
	"github.com/dgallion1/rstbook/internal/outline"
)

// ErrNoTitle is returned when the document has no level 1 heading.
var ErrNoTitle = errors.New("document must have a title (H1 heading)")

// cursor threads the parse state through the heading walk. It is the explicit
// form of the chapter/section bookkeeping: at any point either no chapter is
// open, a chapter is open collecting lead-in content, or a chapter is open
// with a numbered section in flight.
type cursor struct {
	doc *markdown.Document

	title        string
	titleLine    int
	firstH2Line  int
	chapterStart int

	chapter      *outline.Chapter
	section      *outline.Section
	sectionStart int

	chapters []*outline.Chapter
}

// Parse builds an Outline from raw document text. outputDir must already be
// resolved by the caller (explicit flag or configured default); the parser
// never reads ambient configuration.
func Parse(src string, outputDir string) (*outline.Outline, error) {
	doc := markdown.Parse(src)
	headings := doc.Headings()

	c := &cursor{doc: doc}

	for i, h := range headings {
		switch {
		case h.Level == 1 && c.title == "":
			c.title = h.Text
			c.titleLine = h.Line
			c.chapterStart = h.Line
		case h.Level == 2:
			c.openChapter(h)
		case h.Level == 3 && c.chapter != nil:
			c.handleSection(h, i, headings)
		}
		// Later H1s and anything level 4 or deeper stay embedded in whatever
		// content block spans them.
	}
	c.finalizeChapter(doc.LineCount() + 1)

	if c.title == "" {
		return nil, ErrNoTitle
	}

	return &outline.Outline{
		Title:        c.title,
		Introduction: c.introduction(),
		Chapters:     c.chapters,
		OutputDir:    outputDir,
	}, nil
}

// openChapter closes the chapter in flight and starts a new one at h.
func (c *cursor) openChapter(h markdown.Heading) {
	c.finalizeChapter(h.Line)

	c.chapter = outline.ClassifyChapter(h.Text, h.Line)
	if c.firstH2Line == 0 {
		c.firstH2Line = h.Line
	}
	c.chapterStart = h.Line
	c.section = nil
}

// handleSection processes an H3 heading inside an open chapter. i indexes h
// within headings, used to find the absorption boundary for content headings.
func (c *cursor) handleSection(h markdown.Heading, i int, headings []markdown.Heading) {
	if c.section != nil {
		c.finalizeSection(h.Line)
	}

	sec := outline.ClassifySection(h.Text, h.Line)

	if sec.Kind == outline.SectionContentHeading {
		// Content headings are only merged while the chapter is still in its
		// pre-section part; once numbered sections exist they are dropped.
		if len(c.chapter.Sections) == 0 {
			c.absorbContentHeading(h.Line, i, headings)
		}
		return
	}

	if len(c.chapter.Sections) == 0 {
		// First numbered section: everything from the chapter heading up to
		// here is the chapter's own lead-in content. This happens once.
		c.chapter.Content = c.extract(c.chapterStart, h.Line-1)
	}
	c.section = sec
	c.sectionStart = h.Line
}

// absorbContentHeading folds an unnumbered H3 plus its trailing content into
// the chapter's content block, up to the next structural heading or end of
// document.
func (c *cursor) absorbContentHeading(line, i int, headings []markdown.Heading) {
	end := c.doc.LineCount() + 1
	for _, next := range headings[i+1:] {
		if next.Level <= 3 {
			end = next.Line
			break
		}
	}

	block := c.extract(line, end-1)
	if c.chapter.Content.IsEmpty() {
		c.chapter.Content = block
	} else {
		c.chapter.Content.Text += "\n\n" + block.Text
		c.chapter.Content.EndLine = block.EndLine
	}
}

// finalizeSection closes the open numbered section at the given boundary
// line (exclusive) and attaches it to the chapter.
func (c *cursor) finalizeSection(boundary int) {
	c.section.Content = c.extract(c.sectionStart, boundary-1)
	c.chapter.Sections = append(c.chapter.Sections, c.section)
	c.section = nil
}

// finalizeChapter closes the open chapter at the given boundary line
// (exclusive). A chapter that never gained a numbered section claims the full
// span from its heading to the boundary, replacing any absorbed
// content-heading blocks so no text is duplicated.
func (c *cursor) finalizeChapter(boundary int) {
	if c.chapter == nil {
		return
	}
	if c.section != nil {
		c.finalizeSection(boundary)
	}
	if len(c.chapter.Sections) == 0 {
		c.chapter.Content = c.extract(c.chapterStart, boundary-1)
	}
	c.chapters = append(c.chapters, c.chapter)
	c.chapter = nil
}

// introduction is the content between the title and the first chapter,
// extracted only when at least one chapter exists.
func (c *cursor) introduction() outline.ContentBlock {
	if len(c.chapters) > 0 && c.titleLine > 0 && c.firstH2Line > 0 {
		return c.extract(c.titleLine, c.firstH2Line-1)
	}
	return outline.ContentBlock{}
}

func (c *cursor) extract(start, end int) outline.ContentBlock {
	return outline.ContentBlock{
		Text:      c.doc.Extract(start, end),
		StartLine: start,
		EndLine:   end,
	}
}
