package rst

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
)

// Converter turns a Markdown fragment into RST markup. The production
// implementation shells out to pandoc; tests inject a fake.
type Converter interface {
	Convert(markdown string) (string, error)
}

// ErrConverterNotFound means the external converter executable could not be
// located. It is distinct from a conversion failure: the remedy is to
// install the tool, not to fix the document.
var ErrConverterNotFound = errors.New("pandoc is not installed or not found in PATH")

// Pandoc converts Markdown to RST by invoking the pandoc executable through
// temporary exchange files. The files are removed on every exit path.
type Pandoc struct {
	// Path is the executable to invoke. Empty means "pandoc" from PATH.
	Path string
}

func (p *Pandoc) executable() string {
	if p.Path != "" {
		return p.Path
	}
	return "pandoc"
}

// Convert runs pandoc on the given Markdown text and returns the RST output.
func (p *Pandoc) Convert(markdown string) (string, error) {
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	in, err := os.CreateTemp("", "rstbook-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(in.Name())

	if _, err := in.WriteString(markdown); err != nil {
		in.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	in.Close()

	out, err := os.CreateTemp("", "rstbook-*.rst")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	out.Close()
	defer os.Remove(out.Name())

	cmd := exec.Command(p.executable(), "-f", "markdown", "-t", "rst", in.Name(), "-o", out.Name())
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var execErr *exec.Error
		if errors.As(err, &execErr) || errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w\n\n%s", ErrConverterNotFound, installInstructions())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("pandoc conversion failed: %s", msg)
	}

	converted, err := os.ReadFile(out.Name())
	if err != nil {
		return "", fmt.Errorf("read converted output: %w", err)
	}
	return string(converted), nil
}

func installInstructions() string {
	return strings.Join([]string{
		"To install pandoc:",
		"  macOS:         brew install pandoc",
		"  Debian/Ubuntu: sudo apt-get install pandoc",
		"  Other:         https://pandoc.org/installing.html",
	}, "\n")
}
