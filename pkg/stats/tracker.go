// Package stats maintains live combat statistics for one player
// against one tracked target, derived from typed log events.
package stats

import (
	"sync"
	"time"

	"nwn-tracker/pkg/processor"
)

// Exchange is the last resolved attack exchange. Damage lines carry no
// attribution of their own, so the next damage line is classified by
// whichever attack resolved most recently.
type Exchange int

const (
	ExchangeUnknown Exchange = iota
	ExchangePlayerHit
	ExchangePlayerHitCrit
	ExchangeOpponentHit
	ExchangeOpponentHitCrit
)

// Config carries the tracker settings that survive a reset.
type Config struct {
	PlayerName   string
	TargetFilter string
	ExactMatch   bool
	LockMode     bool
	Window       time.Duration
}

// Tracker is the stateful aggregation core. One goroutine feeds it log
// lines while another reads snapshots on a timer, so every public
// method takes the mutex.
type Tracker struct {
	mu       sync.Mutex
	now      func() time.Time
	resolver Resolver
	window   time.Duration

	targetSaves *EnemySaves
	targetAC    *EnemyAC
	targetAB    *int
	attackBonus *AttackBonus

	hits             int
	misses           int
	crits            int
	conceals         int
	targetConcealPct *int

	damageDealt       int
	damageDealtCrits  []int
	damageDealtNormal []int
	weaponBuffTotal   int
	weaponBuffByType  map[string]int
	shieldTotal       int
	shieldByType      map[string]int
	damageTaken       []int
	damageTakenByType map[string][]int

	playerPots int
	targetPots int

	lastExchange Exchange

	encounterStart time.Time
	encounterLast  time.Time
	targetDead     bool
	killTime       time.Time
}

// New creates a tracker for the given configuration.
func New(cfg Config) *Tracker {
	t := &Tracker{
		now: time.Now,
		resolver: Resolver{
			PlayerName:   cfg.PlayerName,
			TargetFilter: cfg.TargetFilter,
			ExactMatch:   cfg.ExactMatch,
			LockMode:     cfg.LockMode,
		},
		window: cfg.Window,
	}
	t.clear()
	return t
}

// clear resets session state; configuration is untouched. Callers hold
// the lock (or are the constructor).
func (t *Tracker) clear() {
	t.resolver.ClearTarget()
	t.targetSaves = nil
	t.targetAC = nil
	t.targetAB = nil
	t.attackBonus = NewAttackBonus(t.window)
	t.hits, t.misses, t.crits, t.conceals = 0, 0, 0, 0
	t.targetConcealPct = nil
	t.damageDealt = 0
	t.damageDealtCrits = nil
	t.damageDealtNormal = nil
	t.weaponBuffTotal = 0
	t.weaponBuffByType = make(map[string]int)
	t.shieldTotal = 0
	t.shieldByType = make(map[string]int)
	t.damageTaken = nil
	t.damageTakenByType = make(map[string][]int)
	t.playerPots, t.targetPots = 0, 0
	t.lastExchange = ExchangeUnknown
	t.encounterStart, t.encounterLast = time.Time{}, time.Time{}
	t.targetDead = false
	t.killTime = time.Time{}
}

// ProcessLine extracts events from one raw log line and applies them.
// Lines that match nothing are ignored.
func (t *Tracker) ProcessLine(line string) {
	ev := processor.Extract(line)
	if ev.Empty() {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.apply(ev)
}

func (t *Tracker) apply(ev processor.LineEvents) {
	if ev.Attack != nil {
		t.applyAttack(ev.Attack)
	}
	if ev.ConcealMiss != nil {
		t.applyConcealMiss(ev.ConcealMiss)
	}
	if ev.Save != nil {
		t.applySave(ev.Save)
	}
	if ev.Damage != nil {
		t.applyDamage(ev.Damage)
	}
	if ev.Potion != nil {
		t.applyPotion(ev.Potion)
	}
	if ev.UndeadHeal != nil && t.resolver.MatchesTarget(ev.UndeadHeal.Caster) {
		t.bindTarget(ev.UndeadHeal.Caster)
		t.touchEncounter()
		t.targetPots++
	}
	if ev.Kill != nil {
		t.applyKill(ev.Kill)
	}
}

func (t *Tracker) applyAttack(a *processor.AttackEvent) {
	switch {
	case t.resolver.IsPlayer(a.Attacker) && t.resolver.MatchesTarget(a.Target):
		t.bindTarget(a.Target)
		t.touchEncounter()

		if a.HasConceal {
			pct := a.Conceal
			t.targetConcealPct = &pct
		}
		if a.HasRoll {
			t.attackBonus.Update(a.Bonus, t.now())
		}
		if a.Pending {
			// Outcome still in flight: no counters, no AC data yet.
			return
		}
		switch {
		case a.Outcome.IsHit():
			t.hits++
			if a.Outcome == processor.OutcomeCriticalHit {
				t.crits++
				t.lastExchange = ExchangePlayerHitCrit
			} else {
				t.lastExchange = ExchangePlayerHit
			}
			if a.HasRoll && t.targetAC != nil {
				t.targetAC.RecordHit(a.Total)
			}
		case a.Outcome.IsMiss():
			t.misses++
			if a.HasRoll && t.targetAC != nil {
				t.targetAC.RecordMiss(a.Total, a.Nat1())
			}
		}

	case t.resolver.MatchesTarget(a.Attacker) && t.resolver.IsPlayer(a.Target):
		// The target opening on us establishes the session too.
		t.bindTarget(a.Attacker)
		t.touchEncounter()
		if !a.Outcome.IsHit() {
			return
		}
		if a.Outcome == processor.OutcomeCriticalHit {
			t.lastExchange = ExchangeOpponentHitCrit
		} else {
			t.lastExchange = ExchangeOpponentHit
		}
		if a.HasRoll && (t.targetAB == nil || a.Bonus > *t.targetAB) {
			b := a.Bonus
			t.targetAB = &b
		}
	}
}

func (t *Tracker) applyConcealMiss(c *processor.ConcealMissEvent) {
	if !t.resolver.IsPlayer(c.Attacker) || !t.resolver.MatchesTarget(c.Target) {
		return
	}
	t.bindTarget(c.Target)
	t.touchEncounter()
	pct := c.Conceal
	t.targetConcealPct = &pct
	t.conceals++
}

func (t *Tracker) applySave(s *processor.SaveEvent) {
	if !t.resolver.MatchesTarget(s.Target) {
		return
	}
	t.bindTarget(s.Target)
	t.touchEncounter()
	if t.targetSaves != nil {
		t.targetSaves.Update(s.Kind, s.Bonus)
	}
}

func (t *Tracker) applyDamage(d *processor.DamageEvent) {
	switch {
	case t.resolver.IsPlayer(d.Attacker) && t.resolver.MatchesTarget(d.Target):
		t.bindTarget(d.Target)
		t.touchEncounter()

		nonzero := d.NonzeroComponents()
		if len(nonzero) == 1 {
			// A single-type proc: weapon buff when our own attack just
			// landed, otherwise defensive reflection.
			dtype := nonzero[0].Type
			if t.lastExchange == ExchangePlayerHit || t.lastExchange == ExchangePlayerHitCrit {
				t.weaponBuffTotal += d.Amount
				t.weaponBuffByType[dtype] += d.Amount
			} else {
				t.shieldTotal += d.Amount
				t.shieldByType[dtype] += d.Amount
			}
			return
		}
		t.damageDealt += d.Amount
		if t.lastExchange == ExchangePlayerHitCrit {
			t.damageDealtCrits = append(t.damageDealtCrits, d.Amount)
		} else {
			t.damageDealtNormal = append(t.damageDealtNormal, d.Amount)
		}

	case t.resolver.MatchesTarget(d.Attacker) && t.resolver.IsPlayer(d.Target):
		t.bindTarget(d.Attacker)
		t.touchEncounter()
		t.damageTaken = append(t.damageTaken, d.Amount)
		// Zero-amount components still mark a hit of that type.
		for _, c := range d.Breakdown {
			t.damageTakenByType[c.Type] = append(t.damageTakenByType[c.Type], c.Amount)
		}
	}
}

func (t *Tracker) applyPotion(p *processor.PotionEvent) {
	if t.resolver.IsPlayer(p.User) {
		t.playerPots++
		return
	}
	if t.resolver.MatchesTarget(p.User) {
		t.bindTarget(p.User)
		t.touchEncounter()
		t.targetPots++
	}
}

func (t *Tracker) applyKill(k *processor.KillEvent) {
	if t.targetDead {
		return
	}
	if t.resolver.IsPlayer(k.Killer) && t.resolver.MatchesTarget(k.Target) {
		t.targetDead = true
		t.killTime = t.now()
	}
}

// bindTarget locks target identity on first contact and allocates its
// estimators. Later calls are no-ops.
func (t *Tracker) bindTarget(name string) {
	if t.resolver.TargetName() != "" {
		return
	}
	t.resolver.SetTarget(name)
	locked := t.resolver.TargetName()
	t.targetSaves = &EnemySaves{Name: locked}
	t.targetAC = &EnemyAC{Name: locked}
}

func (t *Tracker) touchEncounter() {
	now := t.now()
	if t.encounterStart.IsZero() {
		t.encounterStart = now
	}
	t.encounterLast = now
}

// Refresh recomputes time-dependent state (the rolling attack-bonus
// maximum) without new events. The presentation layer calls this on
// its render timer.
func (t *Tracker) Refresh() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attackBonus.Refresh(t.now())
}

// Reset clears all session state back to initial values. The player
// name, target filter and mode flags are kept.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clear()
}

// NewTarget resets the session and re-arms lock mode so the next
// non-player combatant becomes the tracked target.
func (t *Tracker) NewTarget() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.clear()
	t.resolver.TargetFilter = ""
	t.resolver.LockMode = true
}
