package stats

import "strings"

// Resolver decides which log actors are the player and which are the
// tracked target. Two modes: an explicit filter (substring or exact
// match against a configured name) or lock mode, which adopts the
// first non-player combatant seen and sticks with it.
type Resolver struct {
	PlayerName   string
	TargetFilter string
	ExactMatch   bool
	LockMode     bool

	targetName string
}

// trimName absorbs sentence-final punctuation from narration.
func trimName(name string) string {
	return strings.TrimRight(strings.TrimSpace(name), ".!,")
}

// IsPlayer reports whether the actor name refers to the player. The
// configured player name matches as a case-insensitive substring; an
// empty configuration matches nothing.
func (r *Resolver) IsPlayer(name string) bool {
	if r.PlayerName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(name), strings.ToLower(r.PlayerName))
}

// MatchesTarget reports whether the actor name refers to the tracked
// target under the current mode.
func (r *Resolver) MatchesTarget(name string) bool {
	name = strings.ToLower(trimName(name))

	if r.LockMode {
		if r.IsPlayer(name) {
			return false
		}
		if r.targetName != "" {
			return strings.ToLower(r.targetName) == name
		}
		// No target locked yet: first non-player combatant wins.
		return true
	}

	if r.TargetFilter == "" {
		return false
	}
	filter := strings.ToLower(strings.TrimSpace(r.TargetFilter))
	if r.ExactMatch {
		return filter == name
	}
	return strings.Contains(name, filter)
}

// SetTarget locks the target identity. Only the first call in a
// session assigns; later calls are no-ops.
func (r *Resolver) SetTarget(name string) {
	if r.targetName == "" {
		r.targetName = trimName(name)
	}
}

// TargetName returns the canonical locked target name, or "".
func (r *Resolver) TargetName() string { return r.targetName }

// ClearTarget drops the locked identity; configuration is untouched.
func (r *Resolver) ClearTarget() { r.targetName = "" }
