package outline

// HeadingKind classifies a chapter-level (H2) heading. It drives folder
// naming and title cleaning downstream.
type HeadingKind int

const (
	KindBookTitle HeadingKind = iota
	KindPrologue
	KindIntroduction
	KindChapter
	KindAppendix
)

func (k HeadingKind) String() string {
	switch k {
	case KindBookTitle:
		return "book_title"
	case KindPrologue:
		return "prologue"
	case KindIntroduction:
		return "introduction"
	case KindChapter:
		return "chapter"
	case KindAppendix:
		return "appendix"
	}
	return "unknown"
}

// ContentBlock is a contiguous run of source document text between two
// structural headings. StartLine and EndLine are 1-indexed references into
// the original document; they are kept for traceability only.
type ContentBlock struct {
	Text      string
	StartLine int
	EndLine   int
}

// IsEmpty reports whether the block holds no meaningful text.
func (b ContentBlock) IsEmpty() bool {
	for _, r := range b.Text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// SectionKind distinguishes numbered sections, which become their own files,
// from content headings, which are folded into the owning chapter.
type SectionKind int

const (
	SectionNumbered SectionKind = iota
	SectionContentHeading
)

// Section is an H3 heading within a chapter. Number and Filename are empty
// for content headings.
type Section struct {
	Title    string
	Number   string
	Content  ContentBlock
	Filename string
	Kind     SectionKind
}

// Chapter is an H2 structural division of the document. Sections holds only
// numbered sections; content headings are absorbed into Content.
type Chapter struct {
	Title          string
	Kind           HeadingKind
	FolderName     string
	Content        ContentBlock
	Sections       []*Section
	ChapterNumber  int    // 0 unless Kind == KindChapter with a parsed number
	AppendixLetter string // "" unless Kind == KindAppendix
}

// Outline is the complete parsed structure of one source document. Chapters
// appear in document order and are never renumbered.
type Outline struct {
	Title        string
	Introduction ContentBlock
	Chapters     []*Chapter
	OutputDir    string
}

// Severity levels for validation findings.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// ValidationError is a single structural finding with its source line.
type ValidationError struct {
	Line     int
	Message  string
	Severity string
}

// ValidationResult aggregates every finding for a document. Valid is true
// exactly when no error-severity findings exist; warnings never block
// conversion.
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}
