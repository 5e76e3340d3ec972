// Package markdown turns raw Markdown source into the flat heading-event
// stream the outline pipeline consumes. It is the only place that touches a
// Markdown parser; everything downstream works with (level, text, line)
// events and line-range extraction.
package markdown

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is a structural heading event. Line is 1-indexed into the source.
type Heading struct {
	Level int
	Text  string
	Line  int
}

// Document is a line-addressed Markdown source together with its heading
// events in document order. Only top-level headings count as events; headings
// nested inside lists, quotes, or code fences stay inert in body content.
type Document struct {
	lines    []string
	headings []Heading
}

// Parse reads src with goldmark and collects heading events.
func Parse(src string) *Document {
	raw := []byte(src)

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(raw))

	lines := strings.Split(src, "\n")

	// Offsets of each line start, for mapping AST segments to line numbers.
	starts := make([]int, 0, len(lines))
	off := 0
	for _, l := range lines {
		starts = append(starts, off)
		off += len(l) + 1
	}
	lineOf := func(offset int) int {
		i := sort.Search(len(starts), func(i int) bool { return starts[i] > offset })
		return i // starts[i-1] <= offset, lines are 1-indexed
	}

	var headings []Heading
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*ast.Heading)
		if !ok {
			continue
		}
		if h.Lines().Len() == 0 {
			// Marker-only heading with no text carries no position.
			continue
		}
		headings = append(headings, Heading{
			Level: h.Level,
			Text:  string(h.Text(raw)),
			Line:  lineOf(h.Lines().At(0).Start),
		})
	}

	return &Document{lines: lines, headings: headings}
}

// Headings returns the heading events in document order.
func (d *Document) Headings() []Heading {
	return d.headings
}

// LineCount returns the number of source lines.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Extract reconstructs the literal source text for the inclusive 1-indexed
// line range [start, end]. Out-of-range bounds are clamped; an inverted range
// yields the empty string.
func (d *Document) Extract(start, end int) string {
	if start < 1 {
		start = 1
	}
	if end > len(d.lines) {
		end = len(d.lines)
	}
	if start > end {
		return ""
	}
	return strings.Join(d.lines[start-1:end], "\n")
}
