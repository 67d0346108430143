package stats

import "time"

// Snapshot is a point-in-time copy of the session state, safe to read
// while the tracker keeps consuming lines. All slices and maps are
// deep-copied.
type Snapshot struct {
	PlayerName   string
	TargetName   string
	TargetFilter string
	LockMode     bool

	AttackBonusCurrent int
	AttackBonusMax     int
	TargetAttackBonus  *int
	ACEstimate         string
	SaveFortitude      *int
	SaveReflex         *int
	SaveWill           *int

	Hits             int
	Misses           int
	Crits            int
	Conceals         int
	TargetConcealPct *int

	DamageDealt       int
	DamageDealtCrits  []int
	DamageDealtNormal []int
	WeaponBuffTotal   int
	WeaponBuffByType  map[string]int
	ShieldTotal       int
	ShieldByType      map[string]int
	DamageTaken       []int
	DamageTakenByType map[string][]int

	PlayerPotions int
	TargetPotions int

	EncounterStart time.Time
	EncounterLast  time.Time
	TargetDead     bool
	KillTime       time.Time
}

// Snapshot returns a copy of the current session state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Snapshot{
		PlayerName:   t.resolver.PlayerName,
		TargetName:   t.resolver.TargetName(),
		TargetFilter: t.resolver.TargetFilter,
		LockMode:     t.resolver.LockMode,

		AttackBonusCurrent: t.attackBonus.Current,
		AttackBonusMax:     t.attackBonus.MaxObserved,
		TargetAttackBonus:  copyInt(t.targetAB),
		TargetConcealPct:   copyInt(t.targetConcealPct),

		Hits:     t.hits,
		Misses:   t.misses,
		Crits:    t.crits,
		Conceals: t.conceals,

		DamageDealt:       t.damageDealt,
		DamageDealtCrits:  append([]int(nil), t.damageDealtCrits...),
		DamageDealtNormal: append([]int(nil), t.damageDealtNormal...),
		WeaponBuffTotal:   t.weaponBuffTotal,
		WeaponBuffByType:  copyIntMap(t.weaponBuffByType),
		ShieldTotal:       t.shieldTotal,
		ShieldByType:      copyIntMap(t.shieldByType),
		DamageTaken:       append([]int(nil), t.damageTaken...),
		DamageTakenByType: copyIntsMap(t.damageTakenByType),

		PlayerPotions: t.playerPots,
		TargetPotions: t.targetPots,

		EncounterStart: t.encounterStart,
		EncounterLast:  t.encounterLast,
		TargetDead:     t.targetDead,
		KillTime:       t.killTime,
	}
	s.ACEstimate = "?"
	if t.targetAC != nil {
		s.ACEstimate = t.targetAC.Estimate()
	}
	if t.targetSaves != nil {
		s.SaveFortitude = copyInt(t.targetSaves.Fortitude)
		s.SaveReflex = copyInt(t.targetSaves.Reflex)
		s.SaveWill = copyInt(t.targetSaves.Will)
	}
	return s
}

// TotalAttacks sums resolved hits, misses and concealment misses.
func (s Snapshot) TotalAttacks() int { return s.Hits + s.Misses + s.Conceals }

// HitRate is the fraction of attack attempts that connected, in percent.
func (s Snapshot) HitRate() float64 {
	total := s.TotalAttacks()
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total) * 100
}

// TotalDamageDealt sums plain weapon damage with buff and reflect procs.
func (s Snapshot) TotalDamageDealt() int {
	return s.DamageDealt + s.WeaponBuffTotal + s.ShieldTotal
}

// AvgNormalDamage is the mean of non-crit weapon damage amounts.
func (s Snapshot) AvgNormalDamage() float64 { return mean(s.DamageDealtNormal) }

// AvgCritDamage is the mean of crit weapon damage amounts.
func (s Snapshot) AvgCritDamage() float64 { return mean(s.DamageDealtCrits) }

// TotalDamageTaken sums all damage received from the target.
func (s Snapshot) TotalDamageTaken() int {
	total := 0
	for _, v := range s.DamageTaken {
		total += v
	}
	return total
}

// FightDuration is the encounter length: start to kill when the target
// died, otherwise start to last activity.
func (s Snapshot) FightDuration() time.Duration {
	if s.EncounterStart.IsZero() {
		return 0
	}
	if s.TargetDead && !s.KillTime.IsZero() {
		return s.KillTime.Sub(s.EncounterStart)
	}
	if s.EncounterLast.IsZero() {
		return 0
	}
	return s.EncounterLast.Sub(s.EncounterStart)
}

// DPS is damage dealt per second of encounter, measured to the kill
// when the target died and to now otherwise. Zero until damage lands.
func (s Snapshot) DPS(now time.Time) float64 {
	if s.EncounterStart.IsZero() {
		return 0
	}
	end := now
	if s.TargetDead && !s.KillTime.IsZero() {
		end = s.KillTime
	}
	secs := end.Sub(s.EncounterStart).Seconds()
	total := s.TotalDamageDealt()
	if secs <= 0 || total <= 0 {
		return 0
	}
	return float64(total) / secs
}

func mean(vals []int) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return float64(sum) / float64(len(vals))
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyIntMap(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyIntsMap(m map[string][]int) map[string][]int {
	out := make(map[string][]int, len(m))
	for k, v := range m {
		out[k] = append([]int(nil), v...)
	}
	return out
}
