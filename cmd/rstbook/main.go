package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dgallion1/rstbook/internal/config"
	"github.com/dgallion1/rstbook/internal/outline"
	"github.com/dgallion1/rstbook/internal/parser"
	"github.com/dgallion1/rstbook/internal/preview"
	"github.com/dgallion1/rstbook/internal/rst"
	"github.com/dgallion1/rstbook/internal/validator"
)

var (
	verbose   bool
	outputDir string
	force     bool
	dryRun    bool
)

var rootCmd = &cobra.Command{
	Use:   "rstbook",
	Short: "Convert a Markdown book outline into an RST documentation tree",
	Long: `rstbook converts a single Markdown document with a constrained heading
hierarchy into a multi-file reStructuredText documentation tree:

  H1  book title
  H2  chapters (Prologue, Introduction, Chapter N:, Appendix X:)
  H3  numbered sections (1.1, A.2) or content headings

Content blocks are converted to RST with pandoc, which must be on PATH.

Environment variables:
  RSTBOOK_DOCS_DIR  default output directory (default: docs)
  RSTBOOK_PANDOC    pandoc executable (default: pandoc)
  RSTBOOK_ADDR      preview server address (default: :8090)`,
	SilenceUsage: true,
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.md>",
	Short: "Convert a Markdown outline to an RST file tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

var validateCmd = &cobra.Command{
	Use:   "validate <file.md>",
	Short: "Check a Markdown outline for structural problems",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Serve a generated documentation tree over HTTP",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	convertCmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory (default: RSTBOOK_DOCS_DIR)")
	convertCmd.Flags().BoolVar(&force, "force", false, "overwrite existing output, backing up changed files")
	convertCmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be created without writing anything")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := newLogger()

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read markdown file: %w", err)
	}

	result := validator.Validate(string(src))
	for _, w := range result.Warnings {
		fmt.Printf("warning: line %d: %s\n", w.Line, w.Message)
	}
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Printf("error: line %d: %s\n", e.Line, e.Message)
		}
		return errors.New("validation failed; fix the errors above")
	}

	dir := outputDir
	if dir == "" {
		dir = cfg.DocsDir
	}

	o, err := parser.Parse(string(src), dir)
	if err != nil {
		return fmt.Errorf("parse outline: %w", err)
	}

	sections := 0
	for _, ch := range o.Chapters {
		sections += len(ch.Sections)
	}
	fmt.Printf("Book title: %s\n", o.Title)
	fmt.Printf("Chapters: %d, sections: %d\n", len(o.Chapters), sections)
	fmt.Printf("Output directory: %s\n", o.OutputDir)

	gen := rst.NewGenerator(&rst.Pandoc{Path: cfg.Pandoc}, force, dryRun, log)
	report, err := gen.Generate(o)
	if err != nil {
		return err
	}

	if dryRun {
		printDryRunPlan(o, report)
		return nil
	}

	for _, a := range report.Actions {
		switch a.Status {
		case rst.StatusUnchanged:
			fmt.Printf("Unchanged: %s\n", a.Path)
		default:
			if a.Backup != "" {
				fmt.Printf("Backed up: %s -> %s\n", a.Path, a.Backup)
			}
			fmt.Printf("%s: %s\n", titleCase(string(a.Status)), a.Path)
		}
	}

	fmt.Println("\nGenerated structure:")
	fmt.Print(rst.Tree(o))
	return nil
}

func printDryRunPlan(o *outline.Outline, report *rst.Report) {
	fmt.Println("=== DRY RUN - no files will be created ===")
	for _, ch := range o.Chapters {
		fmt.Printf("\nChapter: %s\n", ch.Title)
		fmt.Printf("  Folder: %s\n", ch.FolderName)
		fmt.Printf("  Sections: %d\n", len(ch.Sections))
		for _, sec := range ch.Sections {
			fmt.Printf("    - %s -> %s\n", sec.Title, sec.Filename)
		}
	}
	fmt.Println("\nFiles that would be created:")
	for _, a := range report.Actions {
		fmt.Printf("  %s\n", a.Path)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read markdown file: %w", err)
	}

	result := validator.Validate(string(src))
	for _, w := range result.Warnings {
		fmt.Printf("warning: line %d: %s\n", w.Line, w.Message)
	}
	for _, e := range result.Errors {
		fmt.Printf("error: line %d: %s\n", e.Line, e.Message)
	}

	if !result.Valid {
		return fmt.Errorf("validation failed with %d error(s)", len(result.Errors))
	}
	fmt.Println("Validation passed.")
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	dir := cfg.DocsDir
	if len(args) == 1 {
		dir = args[0]
	}

	srv, err := preview.NewServer(dir, log)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	fmt.Printf("Serving %s on %s\n", dir, cfg.Addr)
	return httpServer.ListenAndServe()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
