package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Report renders the snapshot as the multi-section plain-text stats
// pane shared by the GUI and headless mode.
func Report(s Snapshot, now time.Time) string {
	var b strings.Builder

	b.WriteString("YOUR ATTACK BONUS\n")
	fmt.Fprintf(&b, "+%d current  +%d max", s.AttackBonusCurrent, s.AttackBonusMax)
	if dps := s.DPS(now); dps > 0 {
		fmt.Fprintf(&b, "  %.0f dps", dps)
	}
	b.WriteString("\n\n")

	if s.TargetName == "" {
		if s.LockMode {
			b.WriteString("LOCK MODE\nWaiting for your first attack...\n")
		} else {
			b.WriteString("Waiting for target...\n")
			fmt.Fprintf(&b, "Looking for: %s\n", s.TargetFilter)
		}
		return b.String()
	}

	b.WriteString(s.TargetName)
	if s.TargetDead {
		b.WriteString("  DEAD")
	}
	b.WriteString("\n")

	var parts []string
	if !s.EncounterStart.IsZero() {
		secs := int(s.FightDuration().Seconds())
		if s.TargetDead && !s.KillTime.IsZero() {
			parts = append(parts, fmt.Sprintf("Killed in %ds", secs))
		} else {
			parts = append(parts, fmt.Sprintf("Fight: %ds", secs))
		}
	}
	if s.TargetAttackBonus != nil {
		parts = append(parts, fmt.Sprintf("AB +%d", *s.TargetAttackBonus))
	}
	parts = append(parts, fmt.Sprintf("AC %s", s.ACEstimate))
	if s.TargetConcealPct != nil && *s.TargetConcealPct > 0 {
		parts = append(parts, fmt.Sprintf("%d%% conceal", *s.TargetConcealPct))
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Saves: Fort %s  Ref %s  Will %s\n\n",
		bonusOrUnknown(s.SaveFortitude), bonusOrUnknown(s.SaveReflex), bonusOrUnknown(s.SaveWill))

	b.WriteString("DAMAGE DEALT\n")
	if s.TotalAttacks() > 0 {
		fmt.Fprintf(&b, "%d hits  %d miss  %d crit", s.Hits, s.Misses, s.Crits)
		if s.Conceals > 0 {
			fmt.Fprintf(&b, "  %d conceal", s.Conceals)
		}
		fmt.Fprintf(&b, "  (%.0f%%)\n", s.HitRate())
	}
	fmt.Fprintf(&b, "%d total\n", s.TotalDamageDealt())
	if s.DamageDealt > 0 {
		fmt.Fprintf(&b, "  %d weapon (avg %.0f, crit %.0f)\n",
			s.DamageDealt, s.AvgNormalDamage(), s.AvgCritDamage())
	}
	if s.WeaponBuffTotal > 0 {
		fmt.Fprintf(&b, "  %d buffs (%s)\n", s.WeaponBuffTotal, formatByType(s.WeaponBuffByType))
	}
	if s.ShieldTotal > 0 {
		fmt.Fprintf(&b, "  %d reflect (%s)\n", s.ShieldTotal, formatByType(s.ShieldByType))
	}
	b.WriteString("\n")

	b.WriteString("DAMAGE TAKEN\n")
	taken := s.TotalDamageTaken()
	fmt.Fprintf(&b, "%d from %d hits", taken, len(s.DamageTaken))
	if n := len(s.DamageTaken); n > 0 {
		fmt.Fprintf(&b, "  avg %.0f", float64(taken)/float64(n))
	}
	b.WriteString("\n")
	for _, dtype := range sortedKeys(s.DamageTakenByType) {
		amts := s.DamageTakenByType[dtype]
		total := 0
		max := 0
		for _, a := range amts {
			total += a
			if a > max {
				max = a
			}
		}
		if total == 0 {
			continue
		}
		avg := float64(total) / float64(len(amts))
		fmt.Fprintf(&b, "  %s: %d  avg %.0f", shortType(dtype), total, avg)
		// A standout maximum is usually a crit.
		if float64(max) > avg*1.5 {
			fmt.Fprintf(&b, "  max %d", max)
		}
		b.WriteString("\n")
	}

	if s.PlayerPotions > 0 || s.TargetPotions > 0 {
		b.WriteString("\nHEALING\n")
		fmt.Fprintf(&b, "You: %d  Target: %d\n", s.PlayerPotions, s.TargetPotions)
	}

	return b.String()
}

func bonusOrUnknown(p *int) string {
	if p == nil {
		return "?"
	}
	return fmt.Sprintf("+%d", *p)
}

func formatByType(byType map[string]int) string {
	parts := make([]string, 0, len(byType))
	for _, k := range sortedTypeKeys(byType) {
		parts = append(parts, fmt.Sprintf("%d %s", byType[k], shortType(k)))
	}
	return strings.Join(parts, ", ")
}

func shortType(dtype string) string {
	if len(dtype) > 4 {
		return dtype[:4]
	}
	return dtype
}

func sortedTypeKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
