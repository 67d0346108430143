package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"nwn-tracker/pkg/processor"
)

func TestEnemySavesMonotonicMax(t *testing.T) {
	s := &EnemySaves{Name: "Korgan"}
	assert.Nil(t, s.Fortitude)

	s.Update(processor.SaveFortitude, 10)
	s.Update(processor.SaveFortitude, 8)
	s.Update(processor.SaveFortitude, 14)
	assert.Equal(t, 14, *s.Fortitude)

	s.Update(processor.SaveReflex, 3)
	s.Update(processor.SaveWill, -1)
	assert.Equal(t, 3, *s.Reflex)
	assert.Equal(t, -1, *s.Will)
}

func TestEnemyACBoundsOnlyTighten(t *testing.T) {
	ac := &EnemyAC{Name: "Korgan"}
	ac.RecordHit(40)
	ac.RecordHit(45)
	assert.Equal(t, 40, *ac.MinHit)

	ac.RecordMiss(30, false)
	ac.RecordMiss(25, false)
	assert.Equal(t, 30, *ac.MaxMiss)
}

func TestEnemyACIgnoresNat1(t *testing.T) {
	ac := &EnemyAC{Name: "Korgan"}
	ac.RecordMiss(21, true)
	assert.Nil(t, ac.MaxMiss)
}

func TestEnemyACEstimate(t *testing.T) {
	tests := []struct {
		name    string
		minHit  *int
		maxMiss *int
		want    string
	}{
		{"unknown", nil, nil, "?"},
		{"only hit", intp(35), nil, "≤35"},
		{"only miss", nil, intp(29), ">29"},
		{"exact", intp(35), intp(34), "35"},
		{"range", intp(35), intp(30), "31-35"},
		{"contradictory", intp(35), intp(36), "~35"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ac := &EnemyAC{MinHit: tt.minHit, MaxMiss: tt.maxMiss}
			assert.Equal(t, tt.want, ac.Estimate())
		})
	}
}

func intp(v int) *int { return &v }

func TestAttackBonusWindow(t *testing.T) {
	base := time.Date(2026, 1, 14, 21, 0, 0, 0, time.UTC)
	ab := NewAttackBonus(30 * time.Second)

	ab.Update(20, base)
	ab.Update(25, base.Add(5*time.Second))
	ab.Update(18, base.Add(10*time.Second))
	assert.Equal(t, 18, ab.Current)
	assert.Equal(t, 25, ab.MaxObserved)

	// The 25 sample ages out 35s after it landed.
	ab.Refresh(base.Add(36 * time.Second))
	assert.Equal(t, 18, ab.MaxObserved)

	// Time alone must not change anything when refreshed twice.
	ab.Refresh(base.Add(36 * time.Second))
	assert.Equal(t, 18, ab.MaxObserved)
}

func TestAttackBonusWindowEmpties(t *testing.T) {
	base := time.Date(2026, 1, 14, 21, 0, 0, 0, time.UTC)
	ab := NewAttackBonus(30 * time.Second)
	ab.Update(22, base)

	ab.Refresh(base.Add(31 * time.Second))
	assert.Equal(t, 0, ab.MaxObserved)
	assert.Equal(t, 22, ab.Current)
}

func TestAttackBonusUpdatePrunes(t *testing.T) {
	base := time.Date(2026, 1, 14, 21, 0, 0, 0, time.UTC)
	ab := NewAttackBonus(30 * time.Second)
	ab.Update(30, base)
	ab.Update(12, base.Add(40*time.Second))
	assert.Equal(t, 12, ab.MaxObserved)
}

func TestNewAttackBonusDefaultWindow(t *testing.T) {
	ab := NewAttackBonus(0)
	assert.Equal(t, DefaultWindow, ab.window)
}
