package processor

// Outcome is the resolved result of an attack roll.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeHit
	OutcomeCriticalHit
	OutcomeMiss
	OutcomeParried
	OutcomeResisted
)

// IsHit reports whether the outcome counts as a connecting attack.
func (o Outcome) IsHit() bool {
	return o == OutcomeHit || o == OutcomeCriticalHit
}

// IsMiss reports whether the outcome counts as a failed attack.
func (o Outcome) IsMiss() bool {
	return o == OutcomeMiss || o == OutcomeParried || o == OutcomeResisted
}

// SaveKind identifies one of the three saving throws.
type SaveKind int

const (
	SaveFortitude SaveKind = iota
	SaveReflex
	SaveWill
)

func (k SaveKind) String() string {
	switch k {
	case SaveFortitude:
		return "Fort"
	case SaveReflex:
		return "Ref"
	default:
		return "Will"
	}
}

// AttackEvent is one attack roll from the combat log. Roll, Bonus and
// Total are only meaningful when HasRoll is set; the log omits the
// breakdown on some lines. Pending marks a concealment check whose
// outcome arrives on a later line.
type AttackEvent struct {
	Attacker   string
	Target     string
	Outcome    Outcome
	Roll       int
	Bonus      int
	Total      int
	HasRoll    bool
	Conceal    int
	HasConceal bool
	Pending    bool
}

// Nat1 reports a natural 1 fumble.
func (e AttackEvent) Nat1() bool { return e.HasRoll && e.Roll == 1 }

// ConcealMissEvent is an attack swallowed entirely by concealment,
// reported with no roll breakdown.
type ConcealMissEvent struct {
	Attacker string
	Target   string
	Conceal  int
}

// SaveEvent is a saving throw made by Target. Roll and DC are parsed
// but only the bonus feeds the save estimate.
type SaveEvent struct {
	Target string
	Kind   SaveKind
	Bonus  int
	Roll   int
	DC     int
}

// DamageComponent is one typed slice of a damage breakdown.
type DamageComponent struct {
	Type   string
	Amount int
}

// DamageEvent is one damage line. Breakdown keeps zero-amount
// components; consumers decide whether those matter.
type DamageEvent struct {
	Attacker  string
	Target    string
	Amount    int
	Breakdown []DamageComponent
}

// NonzeroComponents returns the breakdown entries with a positive amount.
func (e DamageEvent) NonzeroComponents() []DamageComponent {
	var out []DamageComponent
	for _, c := range e.Breakdown {
		if c.Amount > 0 {
			out = append(out, c)
		}
	}
	return out
}

// PotionEvent is a heal potion use.
type PotionEvent struct {
	User string
}

// UndeadHealEvent is an undead caster harming itself to heal.
type UndeadHealEvent struct {
	Caster string
}

// KillEvent is a kill announcement.
type KillEvent struct {
	Killer string
	Target string
}

// LineEvents is everything extracted from a single log line. A line
// yields at most one attack-family event (Attack or ConcealMiss), but
// the remaining facts match independently and can co-occur with it.
type LineEvents struct {
	Attack      *AttackEvent
	ConcealMiss *ConcealMissEvent
	Save        *SaveEvent
	Damage      *DamageEvent
	Potion      *PotionEvent
	UndeadHeal  *UndeadHealEvent
	Kill        *KillEvent
}

// Empty reports whether nothing matched.
func (ev LineEvents) Empty() bool {
	return ev.Attack == nil && ev.ConcealMiss == nil && ev.Save == nil &&
		ev.Damage == nil && ev.Potion == nil && ev.UndeadHeal == nil && ev.Kill == nil
}
