package preview

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewServer_MissingDirectory(t *testing.T) {
	if _, err := NewServer(filepath.Join(t.TempDir(), "nope"), testLogger()); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestNewServer_NotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "index.rst")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewServer(file, testLogger()); err == nil {
		t.Fatal("expected error for non-directory path")
	}
}

func TestServer_ServesFiles(t *testing.T) {
	dir := t.TempDir()
	content := "Title\n=====\n\nBody.\n"
	if err := os.WriteFile(filepath.Join(dir, "index.rst"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewServer(dir, testLogger())
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.rst", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != content {
		t.Errorf("body mismatch: %q", got)
	}
}

func TestServer_Health(t *testing.T) {
	s, err := NewServer(t.TempDir(), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Body.String(); got != `{"status":"ok"}` {
		t.Errorf("unexpected health body %q", got)
	}
}

func TestServer_NotFound(t *testing.T) {
	s, err := NewServer(t.TempDir(), testLogger())
	if err != nil {
		t.Fatal(err)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing.rst", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
