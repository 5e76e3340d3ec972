package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/rstbook/internal/outline"
)

const sampleBook = `# Test Book

This is the introduction content.

## Introduction

Introduction chapter content.

### Learning Goals

Learning goals content.

### Summary

Summary content.

## Chapter 1: Getting Started

Chapter 1 content here.

### 1.1 First Steps

First steps content.

### 1.2 Next Steps

Next steps content.

## Chapter 2: Advanced Topics

Chapter 2 content.

### 2.1 Deep Dive

Deep dive content.

### 2.2 Even Deeper

Even deeper content.

## Appendix A: Reference Material

Appendix content.

### A.1 Quick Reference

Quick reference content.

### A.2 Detailed Reference

Detailed reference content.
`

func mustParse(t *testing.T, src string) *outline.Outline {
	t.Helper()
	o, err := Parse(src, "out")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return o
}

func TestParse_SampleBook(t *testing.T) {
	o := mustParse(t, sampleBook)

	if o.Title != "Test Book" {
		t.Errorf("expected title Test Book, got %q", o.Title)
	}
	if o.OutputDir != "out" {
		t.Errorf("expected output dir out, got %q", o.OutputDir)
	}
	if len(o.Chapters) != 4 {
		t.Fatalf("expected 4 chapters, got %d", len(o.Chapters))
	}

	wantFolders := []string{"introduction", "chapter1", "chapter2", "appendixA"}
	wantKinds := []outline.HeadingKind{
		outline.KindIntroduction, outline.KindChapter, outline.KindChapter, outline.KindAppendix,
	}
	wantSections := []int{0, 2, 2, 2}

	for i, ch := range o.Chapters {
		if ch.FolderName != wantFolders[i] {
			t.Errorf("chapter %d: expected folder %q, got %q", i, wantFolders[i], ch.FolderName)
		}
		if ch.Kind != wantKinds[i] {
			t.Errorf("chapter %d: expected kind %v, got %v", i, wantKinds[i], ch.Kind)
		}
		if len(ch.Sections) != wantSections[i] {
			t.Errorf("chapter %d: expected %d sections, got %d", i, wantSections[i], len(ch.Sections))
		}
	}
}

func TestParse_IntroductionSpansToFirstChapter(t *testing.T) {
	o := mustParse(t, sampleBook)
	if !strings.Contains(o.Introduction.Text, "This is the introduction content.") {
		t.Errorf("introduction missing prose: %q", o.Introduction.Text)
	}
	if strings.Contains(o.Introduction.Text, "Introduction chapter content.") {
		t.Errorf("introduction must stop at the first chapter heading: %q", o.Introduction.Text)
	}
}

func TestParse_SectionContent(t *testing.T) {
	o := mustParse(t, sampleBook)
	ch := o.Chapters[1]

	if !strings.Contains(ch.Content.Text, "Chapter 1 content here.") {
		t.Errorf("chapter content missing lead-in: %q", ch.Content.Text)
	}
	if strings.Contains(ch.Content.Text, "First steps content.") {
		t.Errorf("chapter content must not include section bodies: %q", ch.Content.Text)
	}

	sec := ch.Sections[0]
	if sec.Number != "1.1" || sec.Title != "First Steps" {
		t.Fatalf("unexpected first section: %+v", sec)
	}
	if !strings.Contains(sec.Content.Text, "First steps content.") {
		t.Errorf("section content missing body: %q", sec.Content.Text)
	}
	if strings.Contains(sec.Content.Text, "Next steps content.") {
		t.Errorf("section content must stop at the next heading: %q", sec.Content.Text)
	}
}

// The last section of a chapter ends at the next chapter heading, not at the
// end of the document.
func TestParse_LastSectionStopsAtChapterBoundary(t *testing.T) {
	o := mustParse(t, sampleBook)
	last := o.Chapters[1].Sections[1]
	if last.Number != "1.2" {
		t.Fatalf("unexpected section %+v", last)
	}
	if strings.Contains(last.Content.Text, "Chapter 2 content.") {
		t.Errorf("section 1.2 bleeds into the next chapter: %q", last.Content.Text)
	}
}

func TestParse_ContentHeadingsAbsorbed(t *testing.T) {
	o := mustParse(t, sampleBook)
	intro := o.Chapters[0]

	if len(intro.Sections) != 0 {
		t.Fatalf("content headings must not create sections, got %d", len(intro.Sections))
	}
	for _, want := range []string{"Learning goals content.", "Summary content."} {
		if !strings.Contains(intro.Content.Text, want) {
			t.Errorf("introduction chapter missing %q: %q", want, intro.Content.Text)
		}
	}
}

// Unnumbered H3s that appear after a numbered section are dropped, not turned
// into sections and not merged into chapter content.
func TestParse_ContentHeadingAfterSectionsDropped(t *testing.T) {
	src := `# Book

## Chapter 1: Mixed

Lead-in.

### 1.1 Real Section

Body.

### Afterthought

Stray content.
`
	o := mustParse(t, src)
	ch := o.Chapters[0]
	if len(ch.Sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(ch.Sections))
	}
	if strings.Contains(ch.Content.Text, "Stray content.") {
		t.Errorf("dropped content heading leaked into chapter content: %q", ch.Content.Text)
	}
}

func TestParse_DeepNumberingIsContentHeading(t *testing.T) {
	src := `# Book

## Chapter 1: One

### 1.1 Section

Body.

### 1.1.1 Too Deep

Deep body.
`
	o := mustParse(t, src)
	ch := o.Chapters[0]
	if len(ch.Sections) != 1 {
		t.Fatalf("1.1.1 must not become a section, got %d sections", len(ch.Sections))
	}
}

func TestParse_ChapterWithNoSections(t *testing.T) {
	src := `# Book

## Chapter 1: Short

All the content lives here.

## Chapter 2: Next

More.
`
	o := mustParse(t, src)
	ch := o.Chapters[0]
	if !strings.Contains(ch.Content.Text, "All the content lives here.") {
		t.Errorf("sectionless chapter missing its content: %q", ch.Content.Text)
	}
	if strings.Contains(ch.Content.Text, "More.") {
		t.Errorf("sectionless chapter bleeds into the next: %q", ch.Content.Text)
	}
}

func TestParse_FirstTitleWins(t *testing.T) {
	src := "# Real Title\n\n## Chapter 1: A\n\nBody.\n\n# Impostor\n\nMore body.\n"
	o := mustParse(t, src)
	if o.Title != "Real Title" {
		t.Errorf("expected first H1 to win, got %q", o.Title)
	}
	if !strings.Contains(o.Chapters[0].Content.Text, "# Impostor") {
		t.Errorf("later H1 should stay embedded in content: %q", o.Chapters[0].Content.Text)
	}
}

func TestParse_NoTitle(t *testing.T) {
	_, err := Parse("just prose, no headings\n", "out")
	if !errors.Is(err, ErrNoTitle) {
		t.Fatalf("expected ErrNoTitle, got %v", err)
	}
}

func TestParse_TitleOnly(t *testing.T) {
	o := mustParse(t, "# Lonely Title\n\nSome prose.\n")
	if len(o.Chapters) != 0 {
		t.Fatalf("expected no chapters, got %d", len(o.Chapters))
	}
	if !o.Introduction.IsEmpty() {
		t.Errorf("introduction requires at least one chapter, got %q", o.Introduction.Text)
	}
}
