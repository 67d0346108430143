package stats

import (
	"fmt"
	"time"

	"nwn-tracker/pkg/processor"
)

// EnemySaves keeps the best-observed bonus per saving throw. Each
// field only ever increases over an encounter; nil means unobserved.
type EnemySaves struct {
	Name      string
	Fortitude *int
	Reflex    *int
	Will      *int
}

// Update raises the running maximum for one save kind.
func (s *EnemySaves) Update(kind processor.SaveKind, bonus int) {
	field := &s.Will
	switch kind {
	case processor.SaveFortitude:
		field = &s.Fortitude
	case processor.SaveReflex:
		field = &s.Reflex
	}
	if *field == nil || bonus > **field {
		v := bonus
		*field = &v
	}
}

// EnemyAC narrows an armor-class estimate from attack totals: the
// lowest total that hit and the highest total that missed. Natural 1
// fumbles miss regardless of total and are excluded from the bound.
type EnemyAC struct {
	Name    string
	MinHit  *int
	MaxMiss *int
}

// RecordHit tightens the upper bound with a connecting attack total.
func (ac *EnemyAC) RecordHit(total int) {
	if ac.MinHit == nil || total < *ac.MinHit {
		v := total
		ac.MinHit = &v
	}
}

// RecordMiss tightens the lower bound with a missed attack total.
func (ac *EnemyAC) RecordMiss(total int, nat1 bool) {
	if nat1 {
		return
	}
	if ac.MaxMiss == nil || total > *ac.MaxMiss {
		v := total
		ac.MaxMiss = &v
	}
}

// Estimate renders the current AC knowledge: an exact value when the
// bounds meet, a range while a gap remains, an approximation when the
// data is contradictory, a one-sided bound otherwise, or "?".
func (ac *EnemyAC) Estimate() string {
	switch {
	case ac.MinHit != nil && ac.MaxMiss != nil:
		switch {
		case *ac.MaxMiss+1 == *ac.MinHit:
			return fmt.Sprintf("%d", *ac.MinHit)
		case *ac.MaxMiss < *ac.MinHit:
			return fmt.Sprintf("%d-%d", *ac.MaxMiss+1, *ac.MinHit)
		default:
			return fmt.Sprintf("~%d", *ac.MinHit)
		}
	case ac.MinHit != nil:
		return fmt.Sprintf("≤%d", *ac.MinHit)
	case ac.MaxMiss != nil:
		return fmt.Sprintf(">%d", *ac.MaxMiss)
	default:
		return "?"
	}
}

// DefaultWindow is the trailing window for the attack-bonus maximum.
const DefaultWindow = 30 * time.Second

type bonusSample struct {
	at    time.Time
	bonus int
}

// AttackBonus tracks the player's last seen attack bonus and its
// maximum over a trailing window. Samples older than the window are
// pruned on every update and on Refresh, so the queue stays bounded
// over long sessions.
type AttackBonus struct {
	Current     int
	MaxObserved int

	window time.Duration
	recent []bonusSample
}

// NewAttackBonus returns a tracker with the given window; a
// non-positive window falls back to DefaultWindow.
func NewAttackBonus(window time.Duration) *AttackBonus {
	if window <= 0 {
		window = DefaultWindow
	}
	return &AttackBonus{window: window}
}

// Update records a new bonus observation at the given time.
func (ab *AttackBonus) Update(bonus int, now time.Time) {
	ab.Current = bonus
	ab.recent = append(ab.recent, bonusSample{at: now, bonus: bonus})
	ab.prune(now)
	ab.MaxObserved = bonus
	for _, s := range ab.recent {
		if s.bonus > ab.MaxObserved {
			ab.MaxObserved = s.bonus
		}
	}
}

// Refresh recomputes the windowed maximum without a new observation.
// Time passing alone can change the maximum, so callers should invoke
// this on a timer.
func (ab *AttackBonus) Refresh(now time.Time) {
	ab.prune(now)
	if len(ab.recent) == 0 {
		// Every sample aged out; an old observation must not keep
		// propping up the maximum.
		ab.MaxObserved = 0
		return
	}
	max := ab.recent[0].bonus
	for _, s := range ab.recent[1:] {
		if s.bonus > max {
			max = s.bonus
		}
	}
	ab.MaxObserved = max
}

func (ab *AttackBonus) prune(now time.Time) {
	cutoff := now.Add(-ab.window)
	i := 0
	for i < len(ab.recent) && !ab.recent[i].at.After(cutoff) {
		i++
	}
	if i > 0 {
		ab.recent = append(ab.recent[:0], ab.recent[i:]...)
	}
}
