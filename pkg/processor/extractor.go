// Package processor turns raw combat log lines into typed events.
// It is pure parsing: no file I/O and no knowledge of who the player
// or the tracked target is.
package processor

import (
	"regexp"
	"strconv"
	"strings"
)

// The attack-family patterns overlap in prefix, so order matters:
// concealment with outcome, concealment still pending, plain attack,
// and finally concealment with no roll at all (an implicit miss).
var (
	attackRegex = regexp.MustCompile(`(?i)` +
		`(?:Attack Of Opportunity\s*:\s*)?` +
		`(?P<attacker>.+?)\s+attacks\s+(?P<target>.+?)\s*:\s*` +
		`\*(?P<outcome>hit|miss|critical hit|parried|resisted)\*\s*` +
		`(?::\s*\((?P<roll>\d+)\s*\+\s*(?P<bonus>-?\d+)\s*=\s*(?P<total>\d+)\))?`)

	attackConcealRegex = regexp.MustCompile(`(?i)` +
		`(?:Attack Of Opportunity\s*:\s*)?` +
		`(?P<attacker>.+?)\s+attacks\s+(?P<target>.+?)\s*:\s*` +
		`\*target concealed:\s*(?P<conceal>\d+)%\*\s*:\s*` +
		`\((?P<roll>\d+)\s*\+\s*(?P<bonus>-?\d+)\s*=\s*(?P<total>\d+)\)\s*:\s*` +
		`\*(?P<outcome>hit|miss|critical hit|parried|resisted)\*`)

	attackConcealPendingRegex = regexp.MustCompile(`(?i)` +
		`(?:Attack Of Opportunity\s*:\s*)?` +
		`(?P<attacker>.+?)\s+attacks\s+(?P<target>.+?)\s*:\s*` +
		`\*target concealed:\s*(?P<conceal>\d+)%\*\s*:\s*` +
		`\((?P<roll>\d+)\s*\+\s*(?P<bonus>-?\d+)\s*=\s*(?P<total>\d+)\)\s*$`)

	concealMissRegex = regexp.MustCompile(`(?i)` +
		`(?P<attacker>.+?)\s+attacks\s+(?P<target>.+?)\s*:\s*` +
		`\*target concealed:\s*(?P<conceal>\d+)%\*\s*$`)

	saveRegex = regexp.MustCompile(`(?i)` +
		`(?:SAVE:\s*)?(?P<target>.+?)\s*:\s*` +
		`(?P<kind>Fort|Fortitude|Reflex|Will)\s+Save(?:\s+vs\.\s*[^:]+?)?\s*:\s*` +
		`\*(?:success|failed)\*\s*:\s*` +
		`\((?P<roll>\d+)\s*\+\s*(?P<bonus>-?\d+)\s*(?:=\s*\d+\s*)?vs\.\s*DC:\s*(?P<dc>\d+)\)`)

	damageRegex = regexp.MustCompile(`(?i)` +
		`(?P<attacker>.+?)\s+damages\s+(?P<target>.+?):\s*(?P<amount>\d+)(?:\s*\((?P<breakdown>[^)]+)\))?`)

	damageTypeRegex = regexp.MustCompile(`(\d+)\s+([A-Za-z]+(?:\s+[A-Za-z]+)?)`)

	potionRegex     = regexp.MustCompile(`(?i)(?P<user>.+?)\s+uses\s+Potion of Heal`)
	undeadHealRegex = regexp.MustCompile(`(?i)(?P<caster>.+?)\s+casts\s+Harm Self \(Undead\)`)
	killRegex       = regexp.MustCompile(`(?i)(?P<killer>.+?)\s+killed\s+(?P<target>.+)`)
)

// Extract parses one raw log line into zero or more typed events. The
// line is prefix-stripped first. At most one attack-family event is
// produced; save, damage, potion, undead-heal and kill facts match
// independently of it.
func Extract(raw string) LineEvents {
	line := StripPrefix(raw)
	if line == "" {
		return LineEvents{}
	}

	var ev LineEvents
	if m := match(attackConcealRegex, line); m != nil {
		ev.Attack = attackFrom(m)
	} else if m := match(attackConcealPendingRegex, line); m != nil {
		a := attackFrom(m)
		a.Pending = true
		ev.Attack = a
	} else if m := match(attackRegex, line); m != nil {
		ev.Attack = attackFrom(m)
	} else if m := match(concealMissRegex, line); m != nil {
		pct, _ := atoi(m["conceal"])
		ev.ConcealMiss = &ConcealMissEvent{
			Attacker: strings.TrimSpace(m["attacker"]),
			Target:   strings.TrimSpace(m["target"]),
			Conceal:  pct,
		}
	}

	if m := match(saveRegex, line); m != nil {
		if bonus, ok := atoi(m["bonus"]); ok {
			roll, _ := atoi(m["roll"])
			dc, _ := atoi(m["dc"])
			ev.Save = &SaveEvent{
				Target: strings.TrimSpace(m["target"]),
				Kind:   saveKind(m["kind"]),
				Bonus:  bonus,
				Roll:   roll,
				DC:     dc,
			}
		}
	}

	if m := match(damageRegex, line); m != nil {
		if amount, ok := atoi(m["amount"]); ok {
			ev.Damage = &DamageEvent{
				Attacker:  strings.TrimSpace(m["attacker"]),
				Target:    strings.TrimSpace(m["target"]),
				Amount:    amount,
				Breakdown: ParseBreakdown(m["breakdown"]),
			}
		}
	}

	if m := match(potionRegex, line); m != nil {
		ev.Potion = &PotionEvent{User: strings.TrimSpace(m["user"])}
	}

	if m := match(undeadHealRegex, line); m != nil {
		ev.UndeadHeal = &UndeadHealEvent{Caster: strings.TrimSpace(m["caster"])}
	}

	if m := match(killRegex, line); m != nil {
		ev.Kill = &KillEvent{
			Killer: strings.TrimSpace(m["killer"]),
			Target: strings.TrimSpace(m["target"]),
		}
	}

	return ev
}

// ParseBreakdown scans a parenthetical damage breakdown such as
// "12 Physical 4 Fire 0 Cold" into typed components. Zero amounts are
// kept; type names are normalized to title case.
func ParseBreakdown(breakdown string) []DamageComponent {
	if breakdown == "" {
		return nil
	}
	var out []DamageComponent
	for _, m := range damageTypeRegex.FindAllStringSubmatch(breakdown, -1) {
		amount, ok := atoi(m[1])
		if !ok {
			continue
		}
		out = append(out, DamageComponent{Type: titleCase(m[2]), Amount: amount})
	}
	return out
}

func attackFrom(m map[string]string) *AttackEvent {
	a := &AttackEvent{
		Attacker: strings.TrimSpace(m["attacker"]),
		Target:   strings.TrimSpace(m["target"]),
		Outcome:  parseOutcome(m["outcome"]),
	}
	if pct, ok := atoi(m["conceal"]); ok {
		a.Conceal = pct
		a.HasConceal = true
	}
	roll, rok := atoi(m["roll"])
	bonus, bok := atoi(m["bonus"])
	total, tok := atoi(m["total"])
	if rok && bok && tok {
		a.Roll, a.Bonus, a.Total = roll, bonus, total
		a.HasRoll = true
	}
	return a
}

func parseOutcome(token string) Outcome {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "hit":
		return OutcomeHit
	case "critical hit":
		return OutcomeCriticalHit
	case "miss":
		return OutcomeMiss
	case "parried":
		return OutcomeParried
	case "resisted":
		return OutcomeResisted
	default:
		return OutcomeNone
	}
}

func saveKind(token string) SaveKind {
	switch strings.ToLower(token) {
	case "fort", "fortitude":
		return SaveFortitude
	case "reflex":
		return SaveReflex
	default:
		return SaveWill
	}
}

// match runs the regex and returns named groups by name, or nil.
func match(re *regexp.Regexp, line string) map[string]string {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for i, name := range re.SubexpNames() {
		if name != "" {
			out[name] = m[i]
		}
	}
	return out
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return n, true
}

func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
