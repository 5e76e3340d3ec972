package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RSTBOOK_DOCS_DIR", "")
	t.Setenv("RSTBOOK_PANDOC", "")
	t.Setenv("RSTBOOK_ADDR", "")

	cfg := Load()
	if cfg.DocsDir != "docs" {
		t.Errorf("expected default docs dir, got %q", cfg.DocsDir)
	}
	if cfg.Pandoc != "pandoc" {
		t.Errorf("expected default pandoc, got %q", cfg.Pandoc)
	}
	if cfg.Addr != ":8090" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("RSTBOOK_DOCS_DIR", "build/docs")
	t.Setenv("RSTBOOK_PANDOC", "/usr/local/bin/pandoc")
	t.Setenv("RSTBOOK_ADDR", ":9000")

	cfg := Load()
	if cfg.DocsDir != "build/docs" {
		t.Errorf("expected build/docs, got %q", cfg.DocsDir)
	}
	if cfg.Pandoc != "/usr/local/bin/pandoc" {
		t.Errorf("expected explicit pandoc path, got %q", cfg.Pandoc)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("expected :9000, got %q", cfg.Addr)
	}
}
