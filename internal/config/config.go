package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds process-wide settings. Everything is optional; the zero-ish
// defaults make the tool usable without any environment setup.
type Config struct {
	// DocsDir is the default output directory when --output-dir is not given.
	DocsDir string

	// Pandoc is the Markdown-to-RST converter executable.
	Pandoc string

	// Addr is the listen address for the preview server.
	Addr string
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory when one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DocsDir: envOr("RSTBOOK_DOCS_DIR", "docs"),
		Pandoc:  envOr("RSTBOOK_PANDOC", "pandoc"),
		Addr:    envOr("RSTBOOK_ADDR", ":8090"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
