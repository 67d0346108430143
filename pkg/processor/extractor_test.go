package processor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlainAttack(t *testing.T) {
	ev := Extract("Azoni Stout attacks Korgan: *hit*: (15 + 20 = 35)")
	require.NotNil(t, ev.Attack)
	a := ev.Attack
	assert.Equal(t, "Azoni Stout", a.Attacker)
	assert.Equal(t, "Korgan", a.Target)
	assert.Equal(t, OutcomeHit, a.Outcome)
	require.True(t, a.HasRoll)
	assert.Equal(t, 15, a.Roll)
	assert.Equal(t, 20, a.Bonus)
	assert.Equal(t, 35, a.Total)
	assert.False(t, a.Pending)
	assert.False(t, a.HasConceal)
}

func TestExtractAttackWithoutRoll(t *testing.T) {
	ev := Extract("Azoni Stout attacks Korgan: *critical hit*")
	require.NotNil(t, ev.Attack)
	assert.Equal(t, OutcomeCriticalHit, ev.Attack.Outcome)
	assert.False(t, ev.Attack.HasRoll)
}

func TestExtractAttackOfOpportunity(t *testing.T) {
	ev := Extract("Attack Of Opportunity : Korgan attacks Azoni Stout: *parried*: (3 + 12 = 15)")
	require.NotNil(t, ev.Attack)
	assert.Equal(t, "Korgan", ev.Attack.Attacker)
	assert.Equal(t, OutcomeParried, ev.Attack.Outcome)
	assert.True(t, ev.Attack.Outcome.IsMiss())
}

func TestExtractNegativeBonus(t *testing.T) {
	ev := Extract("Azoni Stout attacks Korgan: *miss*: (4 + -2 = 2)")
	require.NotNil(t, ev.Attack)
	assert.Equal(t, -2, ev.Attack.Bonus)
}

func TestExtractConcealWithOutcome(t *testing.T) {
	ev := Extract("Azoni Stout attacks Korgan: *target concealed: 50%*: (12 + 20 = 32): *hit*")
	require.NotNil(t, ev.Attack)
	a := ev.Attack
	require.True(t, a.HasConceal)
	assert.Equal(t, 50, a.Conceal)
	assert.Equal(t, OutcomeHit, a.Outcome)
	assert.False(t, a.Pending)
	assert.Equal(t, 32, a.Total)
}

func TestExtractConcealPending(t *testing.T) {
	ev := Extract("Azoni Stout attacks Korgan: *target concealed: 50%*: (12 + 20 = 32)")
	require.NotNil(t, ev.Attack)
	a := ev.Attack
	assert.True(t, a.Pending)
	assert.Equal(t, 50, a.Conceal)
	assert.Equal(t, 20, a.Bonus)
	assert.Equal(t, OutcomeNone, a.Outcome)
}

func TestExtractConcealOnlyMiss(t *testing.T) {
	ev := Extract("Azoni Stout attacks Korgan: *target concealed: 50%*")
	assert.Nil(t, ev.Attack)
	require.NotNil(t, ev.ConcealMiss)
	assert.Equal(t, "Azoni Stout", ev.ConcealMiss.Attacker)
	assert.Equal(t, "Korgan", ev.ConcealMiss.Target)
	assert.Equal(t, 50, ev.ConcealMiss.Conceal)
}

func TestExtractSave(t *testing.T) {
	tests := []struct {
		line string
		kind SaveKind
	}{
		{"Korgan : Fortitude Save vs. Death Magic : *success* : (14 + 18 vs. DC: 30)", SaveFortitude},
		{"SAVE: Korgan : Fort Save : *failed* : (2 + 18 = 20 vs. DC: 30)", SaveFortitude},
		{"Korgan : Reflex Save : *success* : (11 + 9 vs. DC: 15)", SaveReflex},
		{"Korgan : Will Save vs. Mind Spells : *failed* : (5 + 7 vs. DC: 22)", SaveWill},
	}
	for _, tt := range tests {
		ev := Extract(tt.line)
		require.NotNil(t, ev.Save, tt.line)
		assert.Equal(t, tt.kind, ev.Save.Kind, tt.line)
		assert.Equal(t, "Korgan", ev.Save.Target, tt.line)
	}

	ev := Extract("Korgan : Reflex Save : *success* : (11 + 9 vs. DC: 15)")
	assert.Equal(t, 9, ev.Save.Bonus)
	assert.Equal(t, 11, ev.Save.Roll)
	assert.Equal(t, 15, ev.Save.DC)
}

func TestExtractDamageWithBreakdown(t *testing.T) {
	ev := Extract("Azoni Stout damages Korgan: 42 (30 Physical 12 Fire 0 Cold)")
	require.NotNil(t, ev.Damage)
	d := ev.Damage
	assert.Equal(t, "Azoni Stout", d.Attacker)
	assert.Equal(t, "Korgan", d.Target)
	assert.Equal(t, 42, d.Amount)
	assert.Equal(t, []DamageComponent{
		{Type: "Physical", Amount: 30},
		{Type: "Fire", Amount: 12},
		{Type: "Cold", Amount: 0},
	}, d.Breakdown)
	assert.Len(t, d.NonzeroComponents(), 2)
}

func TestExtractDamageWithoutBreakdown(t *testing.T) {
	ev := Extract("Korgan damages Azoni Stout: 17")
	require.NotNil(t, ev.Damage)
	assert.Equal(t, 17, ev.Damage.Amount)
	assert.Empty(t, ev.Damage.Breakdown)
}

func TestParseBreakdownTitleCasesTypes(t *testing.T) {
	comps := ParseBreakdown("8 positive energy 3 FIRE")
	assert.Equal(t, []DamageComponent{
		{Type: "Positive Energy", Amount: 8},
		{Type: "Fire", Amount: 3},
	}, comps)
}

func TestExtractPotionAndHeal(t *testing.T) {
	ev := Extract("Azoni Stout uses Potion of Heal (x3)")
	require.NotNil(t, ev.Potion)
	assert.Equal(t, "Azoni Stout", ev.Potion.User)

	ev = Extract("Korgan casts Harm Self (Undead)")
	require.NotNil(t, ev.UndeadHeal)
	assert.Equal(t, "Korgan", ev.UndeadHeal.Caster)
}

func TestExtractKill(t *testing.T) {
	ev := Extract("Azoni Stout killed Korgan.")
	require.NotNil(t, ev.Kill)
	assert.Equal(t, "Azoni Stout", ev.Kill.Killer)
	assert.Equal(t, "Korgan.", ev.Kill.Target)
}

func TestExtractStripsBracketPrefix(t *testing.T) {
	ev := Extract("[CHAT WINDOW TEXT] [Tue Jan 14 21:03:11] Azoni Stout attacks Korgan: *hit*: (15 + 20 = 35)")
	require.NotNil(t, ev.Attack)
	assert.Equal(t, "Azoni Stout", ev.Attack.Attacker)
}

func TestExtractUnmatchedLine(t *testing.T) {
	assert.True(t, Extract("Azoni Stout: Equipping Longsword +5").Empty())
	assert.True(t, Extract("").Empty())
}

func TestExtractAttackFamilyIsExclusive(t *testing.T) {
	// The conceal-with-outcome form must win over the plain attack and
	// the pending form over the conceal-only miss.
	ev := Extract("Azoni Stout attacks Korgan: *target concealed: 25%*: (9 + 20 = 29): *miss*")
	require.NotNil(t, ev.Attack)
	assert.Nil(t, ev.ConcealMiss)
	assert.False(t, ev.Attack.Pending)
	assert.Equal(t, OutcomeMiss, ev.Attack.Outcome)
}
