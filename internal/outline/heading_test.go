package outline

import "testing"

func TestClassifyChapter(t *testing.T) {
	tests := []struct {
		text   string
		kind   HeadingKind
		folder string
	}{
		{"Prologue", KindPrologue, "prologue"},
		{"Prologue: The Beginning", KindPrologue, "prologue"},
		{"Introduction", KindIntroduction, "introduction"},
		{"Introduction: How to use this book", KindIntroduction, "introduction"},
		{"Chapter 1: Getting Started", KindChapter, "chapter1"},
		{"Chapter 12: Scaling Up", KindChapter, "chapter12"},
		{"Appendix A: Reference Material", KindAppendix, "appendixA"},
		{"Appendix B.2", KindAppendix, "appendixB"},
		{"Appendix C", KindAppendix, "appendixC"},
		{"Appendix AB: Bad Letter", KindAppendix, "appendix_unknown"},
		{"Random Heading", KindChapter, "chapter_unknown"},
	}

	for _, tt := range tests {
		ch := ClassifyChapter(tt.text, 10)
		if ch.Kind != tt.kind {
			t.Errorf("%q: expected kind %v, got %v", tt.text, tt.kind, ch.Kind)
		}
		if ch.FolderName != tt.folder {
			t.Errorf("%q: expected folder %q, got %q", tt.text, tt.folder, ch.FolderName)
		}
		if ch.Title != tt.text {
			t.Errorf("%q: title should be kept verbatim, got %q", tt.text, ch.Title)
		}
		if ch.Content.StartLine != 10 {
			t.Errorf("%q: expected provisional content start 10, got %d", tt.text, ch.Content.StartLine)
		}
	}
}

func TestClassifyChapter_Metadata(t *testing.T) {
	ch := ClassifyChapter("Chapter 7: Lucky", 1)
	if ch.ChapterNumber != 7 {
		t.Errorf("expected chapter number 7, got %d", ch.ChapterNumber)
	}

	app := ClassifyChapter("Appendix D: Glossary", 1)
	if app.AppendixLetter != "D" {
		t.Errorf("expected appendix letter D, got %q", app.AppendixLetter)
	}
}

func TestClassifySection_Numbered(t *testing.T) {
	tests := []struct {
		text     string
		number   string
		title    string
		filename string
	}{
		{"1.1 First Steps", "1.1", "First Steps", "first-steps.rst"},
		{"2.10 Lots of Sections", "2.10", "Lots of Sections", "lots-of-sections.rst"},
		{"A.1 Quick Reference", "A.1", "Quick Reference", "quick-reference.rst"},
		{"B.2 Detailed Reference", "B.2", "Detailed Reference", "detailed-reference.rst"},
	}

	for _, tt := range tests {
		sec := ClassifySection(tt.text, 5)
		if sec.Kind != SectionNumbered {
			t.Fatalf("%q: expected numbered section", tt.text)
		}
		if sec.Number != tt.number {
			t.Errorf("%q: expected number %q, got %q", tt.text, tt.number, sec.Number)
		}
		if sec.Title != tt.title {
			t.Errorf("%q: expected title %q, got %q", tt.text, tt.title, sec.Title)
		}
		if sec.Filename != tt.filename {
			t.Errorf("%q: expected filename %q, got %q", tt.text, tt.filename, sec.Filename)
		}
	}
}

func TestClassifySection_ContentHeadings(t *testing.T) {
	tests := []string{
		"Summary",
		"Learning Goals",
		"1.1.1 Too Deep",
		"A.1.1 Appendix Too Deep",
		"2.3", // bare number, no title
	}

	for _, text := range tests {
		sec := ClassifySection(text, 5)
		if sec.Kind != SectionContentHeading {
			t.Errorf("%q: expected content heading", text)
		}
		if sec.Filename != "" {
			t.Errorf("%q: content headings must have no filename, got %q", text, sec.Filename)
		}
		if sec.Number != "" {
			t.Errorf("%q: content headings must have no number, got %q", text, sec.Number)
		}
		if sec.Title != text {
			t.Errorf("%q: expected full text as title, got %q", text, sec.Title)
		}
	}
}

func TestClassifySection_SymbolOnlyTitle(t *testing.T) {
	sec := ClassifySection("1.1 !!!", 5)
	if sec.Kind != SectionNumbered {
		t.Fatal("expected numbered section")
	}
	if sec.Filename != "section.rst" {
		t.Errorf("expected fallback filename section.rst, got %q", sec.Filename)
	}
}
