package processor

import (
	"regexp"
	"strings"
)

// Player-name detection looks for line shapes that only the local
// player produces. Each pattern carries a reliability weight; the
// highest-scoring candidate over the scanned tail wins.
var (
	detectTalkRegex     = regexp.MustCompile(`(?i)^(?:\[.*?\]\s*)*\[.+?\]\s+(?P<n>.+?):\s+\[Talk\]`)
	detectXPRegex       = regexp.MustCompile(`(?i)^(?:\[.*?\]\s*)*(?P<n>.+?)\s+Experience Points Gained:`)
	detectActionRegex   = regexp.MustCompile(`(?i)^(?:\[.*?\]\s*)*(?P<n>.+?):\s+\[(TELEPORT|RAID)\]`)
	detectSelfCastRegex = regexp.MustCompile(`(?i)^(?:\[.*?\]\s*)*(?P<n>.+?)\s+casts\s+.+?\s+on\s+(?P<t>.+?)\.?\s*$`)
	detectPotionRegex   = regexp.MustCompile(`(?i)^(?:\[.*?\]\s*)*(?P<n>.+?)\s+uses\s+Potion of Heal`)
)

// DetectPlayerName scores the supplied log lines (typically the recent
// tail of the log) against the detection patterns and returns the most
// likely player name, or "" when nothing plausible was found.
func DetectPlayerName(lines []string) string {
	candidates := make(map[string]int)

	score := func(name string, weight int) {
		name = strings.TrimSpace(name)
		if len(name) <= 1 || len(name) >= 40 || strings.HasPrefix(name, "[") {
			return
		}
		candidates[name] += weight
	}

	for _, line := range lines {
		if m := detectTalkRegex.FindStringSubmatch(line); m != nil {
			score(m[1], 15)
		}
		if m := detectXPRegex.FindStringSubmatch(line); m != nil {
			score(m[1], 10)
		}
		if m := detectActionRegex.FindStringSubmatch(line); m != nil {
			score(m[1], 8)
		}
		if m := detectSelfCastRegex.FindStringSubmatch(line); m != nil {
			// Self-casts only: the caster and the target must agree.
			if strings.TrimSpace(m[1]) == strings.TrimSpace(m[2]) {
				score(m[1], 5)
			}
		}
		if m := detectPotionRegex.FindStringSubmatch(line); m != nil {
			score(m[1], 3)
		}
	}

	best := ""
	bestScore := 0
	for name, s := range candidates {
		if s > bestScore || (s == bestScore && name < best) {
			best, bestScore = name, s
		}
	}
	return best
}
