package pfcalc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herosheet/sheet-api/internal/engine/pfcalc"
	"github.com/herosheet/sheet-api/internal/entities/pf"
)

func newTestEntity() *pfcalc.Entity {
	return pfcalc.NewEntity(&pf.CharacterRecord{
		ID:       "char_test",
		Name:     "Test",
		BaseSize: pf.SizeMedium,
	})
}

func TestLedgerEmptyTarget(t *testing.T) {
	ledger := pfcalc.NewLedger()
	e := newTestEntity()

	got := ledger.Breakdown(e, pf.TargetInitiative)
	assert.Equal(t, int32(0), got.Total)
	assert.Empty(t, got.Modifiers)

	// AC-like targets carry an implicit base of 10.
	got = ledger.Breakdown(e, pf.TargetAC)
	assert.Equal(t, int32(10), got.Total)
}

func TestLedgerNonStackingKeepsHighest(t *testing.T) {
	ledger := pfcalc.NewLedger()
	e := newTestEntity()

	ledger.AddBonus(e, pf.TargetAC, 4, pf.BonusArmor, "Chain shirt")
	ledger.AddBonus(e, pf.TargetAC, 2, pf.BonusArmor, "Leather armor")

	got := ledger.Breakdown(e, pf.TargetAC)
	assert.Equal(t, int32(14), got.Total)

	// The dropped duplicate does not appear in the breakdown.
	require.Len(t, got.Modifiers, 1)
	assert.Equal(t, "Chain shirt", got.Modifiers[0].Source)
}

func TestLedgerTieBreakFirstSeenWins(t *testing.T) {
	ledger := pfcalc.NewLedger()
	e := newTestEntity()

	ledger.AddBonus(e, pf.TargetAC, 2, pf.BonusDeflection, "Ring of protection")
	ledger.AddBonus(e, pf.TargetAC, 2, pf.BonusDeflection, "Shield of faith")

	got := ledger.Breakdown(e, pf.TargetAC)
	assert.Equal(t, int32(12), got.Total)
	require.Len(t, got.Modifiers, 1)
	assert.Equal(t, "Ring of protection", got.Modifiers[0].Source)
}

func TestLedgerDodgeStacks(t *testing.T) {
	ledger := pfcalc.NewLedger()
	e := newTestEntity()

	ledger.AddBonus(e, pf.TargetAC, 1, pf.BonusDodge, "Dodge")
	ledger.AddBonus(e, pf.TargetAC, 2, pf.BonusDodge, "Fighting defensively")

	got := ledger.Breakdown(e, pf.TargetAC)
	assert.Equal(t, int32(13), got.Total)
	assert.Len(t, got.Modifiers, 2)
}

func TestLedgerPenaltiesAccumulate(t *testing.T) {
	ledger := pfcalc.NewLedger()
	e := newTestEntity()

	ledger.AddBonus(e, pf.TargetAC, -1, pf.BonusPenalty, "Fatigued")
	ledger.AddBonus(e, pf.TargetAC, -2, pf.BonusPenalty, "Rage")

	got := ledger.Breakdown(e, pf.TargetAC)
	assert.Equal(t, int32(7), got.Total)
	assert.Len(t, got.Modifiers, 2)
}

func TestLedgerMixedTypes(t *testing.T) {
	ledger := pfcalc.NewLedger()
	e := newTestEntity()

	ledger.AddBonus(e, pf.TargetAC, 4, pf.BonusArmor, "Chain shirt")
	ledger.AddBonus(e, pf.TargetAC, 2, pf.BonusShield, "Heavy shield")
	ledger.AddBonus(e, pf.TargetAC, 1, pf.BonusDodge, "Dodge")
	ledger.AddBonus(e, pf.TargetAC, 1, pf.BonusDeflection, "Ring of protection")
	ledger.AddBonus(e, pf.TargetAC, -2, pf.BonusPenalty, "Rage")

	// 10 + 4 + 2 + 1 + 1 - 2
	got := ledger.Breakdown(e, pf.TargetAC)
	assert.Equal(t, int32(16), got.Total)
	assert.Len(t, got.Modifiers, 5)
}

func TestLedgerZeroEntriesKept(t *testing.T) {
	ledger := pfcalc.NewLedger()
	e := newTestEntity()

	ledger.AddBonus(e, pf.TargetInitiative, 0, pf.BonusUntyped, "Placeholder trait")

	got := ledger.Breakdown(e, pf.TargetInitiative)
	assert.Equal(t, int32(0), got.Total)
	require.Len(t, got.Modifiers, 1)
	assert.Equal(t, "Placeholder trait", got.Modifiers[0].Source)
}

func TestLedgerDeterministicRecompute(t *testing.T) {
	build := func() pf.ValueWithBreakdown {
		ledger := pfcalc.NewLedger()
		e := newTestEntity()
		ledger.AddBonus(e, pf.TargetAC, 2, pf.BonusDeflection, "Ring of protection")
		ledger.AddBonus(e, pf.TargetAC, 2, pf.BonusDeflection, "Shield of faith")
		ledger.AddBonus(e, pf.TargetAC, 1, pf.BonusDodge, "Dodge")
		return ledger.Breakdown(e, pf.TargetAC)
	}

	first := build()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, build())
	}
}

func TestLedgerEntitiesIsolated(t *testing.T) {
	ledger := pfcalc.NewLedger()
	a := pfcalc.NewEntity(&pf.CharacterRecord{ID: "char_a"})
	b := pfcalc.NewEntity(&pf.CharacterRecord{ID: "char_b"})

	ledger.AddBonus(a, pf.TargetInitiative, 4, pf.BonusUntyped, "Improved Initiative")

	assert.Equal(t, int32(4), ledger.Breakdown(a, pf.TargetInitiative).Total)
	assert.Equal(t, int32(0), ledger.Breakdown(b, pf.TargetInitiative).Total)
}

func TestAbilityModifier(t *testing.T) {
	tests := []struct {
		score int32
		want  int32
	}{
		{1, -5},
		{7, -2},
		{8, -1},
		{9, -1},
		{10, 0},
		{11, 0},
		{12, 1},
		{15, 2},
		{18, 4},
		{20, 5},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, pfcalc.AbilityModifier(tc.score), "score %d", tc.score)
	}
}
