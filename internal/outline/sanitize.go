package outline

import (
	"regexp"
	"strings"
)

var (
	nonWordChars = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	dashRuns     = regexp.MustCompile(`[-\s]+`)
)

// SanitizeFilename maps a section title to a filesystem-safe .rst filename.
// Word characters, whitespace and hyphens survive; whitespace and hyphen runs
// collapse to a single hyphen; the result is lowercased. Titles that sanitize
// to nothing yield "section.rst". The mapping is deterministic and re-applying
// it to a produced filename's stem reproduces the same filename.
func SanitizeFilename(title string) string {
	name := nonWordChars.ReplaceAllString(title, "")
	name = dashRuns.ReplaceAllString(name, "-")
	name = strings.ToLower(strings.Trim(name, "-"))

	if name == "" {
		name = "section"
	}
	return name + ".rst"
}
