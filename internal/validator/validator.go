// Package validator checks a Markdown outline for the structure the
// conversion pipeline requires: a single title, recognizable chapter
// headings, and at most two levels of section numbering. Validation never
// mutates anything and reports every finding at once.
package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/dgallion1/rstbook/internal/markdown"
	"github.com/dgallion1/rstbook/internal/outline"
)

var (
	deepSectionPattern  = regexp.MustCompile(`(?m)^#+[ \t]*(\d+\.\d+\.\d+)`)
	deepAppendixPattern = regexp.MustCompile(`(?m)^#+[ \t]*([A-Z]\.\d+\.\d+)`)
	chapterPattern      = regexp.MustCompile(`^(Prologue|Introduction|Chapter\s+\d+:|Appendix\s+[A-Z](\.[0-9]+)?)`)
)

// Validate checks raw document text and returns every finding. The result's
// Valid field is true exactly when no error-severity findings exist.
func Validate(src string) outline.ValidationResult {
	var findings []outline.ValidationError

	findings = append(findings, checkNesting(src)...)

	doc := markdown.Parse(src)
	headings := doc.Headings()

	if len(headings) == 0 {
		findings = append(findings, outline.ValidationError{
			Line:     1,
			Message:  "document must contain at least one heading",
			Severity: outline.SeverityError,
		})
		return buildResult(findings)
	}

	findings = append(findings, checkHierarchy(headings)...)
	findings = append(findings, checkPatterns(headings)...)

	return buildResult(findings)
}

// checkNesting scans raw text for section numbering deeper than two levels.
// Both numeric (1.1.1) and appendix (A.1.1) forms are hard errors; the
// offending numbering string appears verbatim in the message.
func checkNesting(src string) []outline.ValidationError {
	var findings []outline.ValidationError

	for _, m := range deepSectionPattern.FindAllStringSubmatchIndex(src, -1) {
		num := src[m[2]:m[3]]
		findings = append(findings, outline.ValidationError{
			Line: lineAt(src, m[0]),
			Message: fmt.Sprintf(
				"section numbering %q exceeds maximum of two levels; do not number section headings within chapters", num),
			Severity: outline.SeverityError,
		})
	}
	for _, m := range deepAppendixPattern.FindAllStringSubmatchIndex(src, -1) {
		num := src[m[2]:m[3]]
		findings = append(findings, outline.ValidationError{
			Line: lineAt(src, m[0]),
			Message: fmt.Sprintf(
				"appendix section numbering %q exceeds maximum of two levels; use X.Y instead of X.Y.Z", num),
			Severity: outline.SeverityError,
		})
	}
	return findings
}

func checkHierarchy(headings []markdown.Heading) []outline.ValidationError {
	var findings []outline.ValidationError

	if headings[0].Level != 1 {
		findings = append(findings, outline.ValidationError{
			Line:     headings[0].Line,
			Message:  "document must start with a level 1 heading (book title)",
			Severity: outline.SeverityError,
		})
	}
	for i := 1; i < len(headings); i++ {
		prev, cur := headings[i-1], headings[i]
		if cur.Level > prev.Level+1 {
			findings = append(findings, outline.ValidationError{
				Line: cur.Line,
				Message: fmt.Sprintf(
					"invalid heading hierarchy: level %d heading cannot follow level %d heading",
					cur.Level, prev.Level),
				Severity: outline.SeverityError,
			})
		}
	}
	return findings
}

func checkPatterns(headings []markdown.Heading) []outline.ValidationError {
	var findings []outline.ValidationError

	for _, h := range headings {
		if h.Level != 2 {
			// Level-3 headings need no pattern check: numbered sections are
			// recognized by the classifier and unnumbered H3s are always
			// legal content headings.
			continue
		}
		if !chapterPattern.MatchString(h.Text) {
			findings = append(findings, outline.ValidationError{
				Line: h.Line,
				Message: fmt.Sprintf(
					"invalid chapter heading %q: must start with 'Prologue', 'Introduction', 'Chapter [number]:', or 'Appendix [letter]:'",
					h.Text),
				Severity: outline.SeverityError,
			})
		}
	}
	return findings
}

func buildResult(findings []outline.ValidationError) outline.ValidationResult {
	res := outline.ValidationResult{Valid: true}
	for _, f := range findings {
		if f.Severity == outline.SeverityError {
			res.Errors = append(res.Errors, f)
			res.Valid = false
		} else {
			res.Warnings = append(res.Warnings, f)
		}
	}
	return res
}

func lineAt(src string, offset int) int {
	return strings.Count(src[:offset], "\n") + 1
}
