package ai

import (
	"regexp"
	"strings"
)

var (
	fenceLine      = regexp.MustCompile("^```[a-zA-Z]*$")
	disclaimerLine = regexp.MustCompile(`(?i)^\(?\[?note\s*:`)
)

// SanitizeDigest strips artifacts models wrap around the requested document:
// code fences, "Note: ..." disclaimer lines and excess blank lines. The
// markdown itself is left untouched.
func SanitizeDigest(s string) string {
	lines := strings.Split(s, "\n")
	kept := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if fenceLine.MatchString(trimmed) {
			continue
		}
		if disclaimerLine.MatchString(trimmed) {
			continue
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	for strings.Contains(out, "\n\n\n") {
		out = strings.ReplaceAll(out, "\n\n\n", "\n\n")
	}
	return strings.TrimSpace(out)
}
