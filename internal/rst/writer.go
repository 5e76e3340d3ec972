package rst

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteStatus is the outcome of one file write.
type WriteStatus string

const (
	StatusCreated   WriteStatus = "created"
	StatusUpdated   WriteStatus = "updated"
	StatusUnchanged WriteStatus = "unchanged"
	StatusPlanned   WriteStatus = "planned"
)

// FileAction records what happened (or would happen) to one output file.
type FileAction struct {
	Path   string
	Status WriteStatus
	Backup string // backup sibling path, "" when none was made
}

// fileWriter performs idempotent, backup-safe writes. Content is compared in
// normalized form; identical content skips the write entirely so repeated
// runs produce no spurious diffs.
type fileWriter struct {
	force bool
	log   *slog.Logger
	now   func() time.Time
}

func (w *fileWriter) write(path, content string) (FileAction, error) {
	existing, err := os.ReadFile(path)
	exists := err == nil

	if exists && Normalize(string(existing)) == Normalize(content) {
		w.log.Info("skipping file, content unchanged", "path", path)
		return FileAction{Path: path, Status: StatusUnchanged}, nil
	}

	action := FileAction{Path: path, Status: StatusCreated}
	if exists {
		action.Status = StatusUpdated
		if w.force {
			backup, err := w.backup(path, existing)
			if err != nil {
				return FileAction{}, err
			}
			action.Backup = backup
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return FileAction{}, fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return FileAction{}, fmt.Errorf("write %s: %w", path, err)
	}
	w.log.Info("wrote file", "path", path, "status", string(action.Status))
	return action, nil
}

// backup copies the current file aside to name.<timestamp>.bak before it is
// overwritten. The timestamp is second-granular and sorts lexically.
func (w *fileWriter) backup(path string, contents []byte) (string, error) {
	stamp := w.now().Format("20060102_150405")
	ext := filepath.Ext(path)
	backup := strings.TrimSuffix(path, ext) + "." + stamp + ".bak"

	if err := os.WriteFile(backup, contents, 0o644); err != nil {
		return "", fmt.Errorf("backup %s: %w", path, err)
	}
	w.log.Info("backed up file", "path", path, "backup", backup)
	return backup, nil
}
