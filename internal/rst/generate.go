// Package rst renders a parsed outline into a reStructuredText file tree:
// one top-level index, one index per chapter, and one file per numbered
// section, wired together with hidden toctree listings. Writes are
// idempotent and backup-safe; Markdown content blocks pass through an
// injected converter with a per-run cache.
package rst

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/rstbook/internal/outline"
)

// ErrDestinationExists means the output directory already exists and force
// was not set.
var ErrDestinationExists = errors.New("output directory already exists")

// Generator renders outlines to disk. One Generator may be reused; the
// content-conversion cache is cleared at the start of every Generate call.
type Generator struct {
	Force  bool
	DryRun bool

	conv  Converter
	log   *slog.Logger
	cache map[string]string
	now   func() time.Time
}

// NewGenerator wires a Generator around a content converter.
func NewGenerator(conv Converter, force, dryRun bool, log *slog.Logger) *Generator {
	return &Generator{
		Force:  force,
		DryRun: dryRun,
		conv:   conv,
		log:    log,
		now:    time.Now,
	}
}

// Report summarizes one conversion run.
type Report struct {
	OutputDir string
	Actions   []FileAction
}

// Generate renders the outline under its output directory. In dry-run mode
// it returns the plan without touching the filesystem at all. Files are
// written in a fixed order (top-level index, then each chapter's index and
// sections in document order) so that a mid-run failure leaves a predictable
// partial state.
func (g *Generator) Generate(o *outline.Outline) (*Report, error) {
	g.cache = make(map[string]string)

	if g.DryRun {
		return g.plan(o), nil
	}

	if err := g.createOutputDir(o.OutputDir); err != nil {
		return nil, err
	}

	report := &Report{OutputDir: o.OutputDir}

	w := &fileWriter{force: g.Force, log: g.log, now: g.now}

	content, err := g.topIndex(o)
	if err != nil {
		return nil, err
	}
	action, err := w.write(filepath.Join(o.OutputDir, "index.rst"), content)
	if err != nil {
		return nil, err
	}
	report.Actions = append(report.Actions, action)

	for _, ch := range o.Chapters {
		dir := filepath.Join(o.OutputDir, ch.FolderName)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create chapter directory: %w", err)
		}

		content, err := g.chapterIndex(ch)
		if err != nil {
			return nil, err
		}
		action, err := w.write(filepath.Join(dir, "index.rst"), content)
		if err != nil {
			return nil, err
		}
		report.Actions = append(report.Actions, action)

		for _, sec := range ch.Sections {
			if sec.Filename == "" {
				continue
			}
			content, err := g.sectionFile(sec)
			if err != nil {
				return nil, err
			}
			action, err := w.write(filepath.Join(dir, sec.Filename), content)
			if err != nil {
				return nil, err
			}
			report.Actions = append(report.Actions, action)
		}
	}

	return report, nil
}

func (g *Generator) createOutputDir(dir string) error {
	if _, err := os.Stat(dir); err == nil && !g.Force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrDestinationExists, dir)
	}
	return os.MkdirAll(dir, 0o755)
}

// plan enumerates every file a real run would create, without filesystem
// access or content conversion.
func (g *Generator) plan(o *outline.Outline) *Report {
	report := &Report{OutputDir: o.OutputDir}
	add := func(parts ...string) {
		report.Actions = append(report.Actions, FileAction{
			Path:   filepath.Join(parts...),
			Status: StatusPlanned,
		})
	}

	add(o.OutputDir, "index.rst")
	for _, ch := range o.Chapters {
		add(o.OutputDir, ch.FolderName, "index.rst")
		for _, sec := range ch.Sections {
			if sec.Filename != "" {
				add(o.OutputDir, ch.FolderName, sec.Filename)
			}
		}
	}
	return report
}

// topIndex renders the top-level index.rst: overlined title, converted
// introduction, and up to three hidden toctree groups in document order.
func (g *Generator) topIndex(o *outline.Outline) (string, error) {
	bar := strings.Repeat("#", len([]rune(o.Title)))
	lines := []string{bar, o.Title, bar, ""}

	if !o.Introduction.IsEmpty() {
		converted, err := g.convert(FilterChapterHeading(o.Introduction.Text, o.Title))
		if err != nil {
			return "", err
		}
		if converted != "" {
			lines = append(lines, converted, "")
		}
	}

	frontMatter := filterChapters(o.Chapters, func(k outline.HeadingKind) bool {
		return k == outline.KindIntroduction || k == outline.KindPrologue
	})
	regular := filterChapters(o.Chapters, func(k outline.HeadingKind) bool {
		return k != outline.KindIntroduction && k != outline.KindPrologue && k != outline.KindAppendix
	})
	appendices := filterChapters(o.Chapters, func(k outline.HeadingKind) bool {
		return k == outline.KindAppendix
	})

	lines = append(lines, toctree("Front Matter", chapterEntries(frontMatter))...)
	lines = append(lines, toctree("Chapters", chapterEntries(regular))...)
	lines = append(lines, toctree("Appendices", chapterEntries(appendices))...)

	return strings.Join(lines, "\n"), nil
}

// chapterIndex renders {folder}/index.rst: cleaned title, hidden toctree of
// numbered section files in numbering order, then the chapter's converted
// content.
func (g *Generator) chapterIndex(ch *outline.Chapter) (string, error) {
	title := CleanChapterTitle(ch)
	lines := []string{title, strings.Repeat("=", len([]rune(title))), ""}

	lines = append(lines, toctree("", sectionEntries(ch.Sections))...)

	if !ch.Content.IsEmpty() {
		converted, err := g.convert(FilterChapterHeading(ch.Content.Text, ch.Title))
		if err != nil {
			return "", err
		}
		if converted != "" {
			lines = append(lines, converted, "")
		}
	}

	return strings.Join(lines, "\n"), nil
}

// sectionFile renders one numbered section. Sections sit one nesting level
// below chapters, so they use the dash underline.
func (g *Generator) sectionFile(sec *outline.Section) (string, error) {
	title := CleanSectionTitle(sec.Title)
	lines := []string{title, strings.Repeat("-", len([]rune(title))), ""}

	if !sec.Content.IsEmpty() {
		converted, err := g.convert(FilterSectionHeading(sec.Content.Text, sec.Title))
		if err != nil {
			return "", err
		}
		if converted != "" {
			lines = append(lines, converted)
		}
	}

	return strings.Join(lines, "\n"), nil
}

// convert runs a content block through the converter, at most once per
// unique source text within this run.
func (g *Generator) convert(md string) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	if cached, ok := g.cache[md]; ok {
		return cached, nil
	}
	converted, err := g.conv.Convert(md)
	if err != nil {
		return "", err
	}
	converted = RemoveAnchors(converted)
	g.cache[md] = converted
	return converted, nil
}

func toctree(caption string, entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	lines := []string{".. toctree::"}
	if caption != "" {
		lines = append(lines, "   :caption: "+caption)
	}
	lines = append(lines, "   :hidden:", "")
	for _, e := range entries {
		lines = append(lines, "   "+e)
	}
	return append(lines, "")
}

func filterChapters(chapters []*outline.Chapter, keep func(outline.HeadingKind) bool) []*outline.Chapter {
	var out []*outline.Chapter
	for _, ch := range chapters {
		if keep(ch.Kind) {
			out = append(out, ch)
		}
	}
	return out
}

func chapterEntries(chapters []*outline.Chapter) []string {
	var entries []string
	for _, ch := range chapters {
		entries = append(entries, ch.FolderName+"/index")
	}
	return entries
}

// sectionEntries lists numbered section stems sorted by section number, not
// document order.
func sectionEntries(sections []*outline.Section) []string {
	numbered := make([]*outline.Section, 0, len(sections))
	for _, s := range sections {
		if s.Filename != "" {
			numbered = append(numbered, s)
		}
	}
	sort.SliceStable(numbered, func(i, j int) bool {
		return numberLess(numbered[i].Number, numbered[j].Number)
	})

	var entries []string
	for _, s := range numbered {
		entries = append(entries, strings.TrimSuffix(s.Filename, ".rst"))
	}
	return entries
}

// numberLess orders section numbers like "1.2" < "1.10" and "A.1" < "A.2".
func numberLess(a, b string) bool {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		ai, aerr := strconv.Atoi(as[i])
		bi, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			if ai != bi {
				return ai < bi
			}
			continue
		}
		if as[i] != bs[i] {
			return as[i] < bs[i]
		}
	}
	return len(as) < len(bs)
}

// Tree renders the generated layout as an ASCII tree: each chapter's section
// files in document order, the chapter index last within the chapter, the
// top-level index last overall.
func Tree(o *outline.Outline) string {
	var b strings.Builder
	fmt.Fprintf(&b, "└── %s/\n", filepath.Base(o.OutputDir))

	for _, ch := range o.Chapters {
		fmt.Fprintf(&b, "    ├── %s/\n", ch.FolderName)
		for _, sec := range ch.Sections {
			if sec.Filename != "" {
				fmt.Fprintf(&b, "    │   ├── %s\n", sec.Filename)
			}
		}
		b.WriteString("    │   └── index.rst\n")
	}
	b.WriteString("    └── index.rst\n")
	return b.String()
}
