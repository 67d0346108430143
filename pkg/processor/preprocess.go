package processor

import (
	"regexp"
	"strings"
)

// Chat log lines start with bracketed channel and timestamp tags, e.g.
// [CHAT WINDOW TEXT] [Tue Jan 14 21:03:11] Korgan attacks Azoni ...
var prefixRegex = regexp.MustCompile(`(?i)^(?:\[[^\]]*\]\s*)+`)

// StripPrefix removes the leading run of bracketed metadata tags from a
// raw log line and trims surrounding whitespace. Applying it to already
// stripped text is a no-op.
func StripPrefix(line string) string {
	line = strings.TrimSpace(line)
	return strings.TrimSpace(prefixRegex.ReplaceAllString(line, ""))
}
