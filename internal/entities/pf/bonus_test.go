package pf_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

func TestBonusTypeStacks(t *testing.T) {
	stacking := []pf.BonusType{
		pf.BonusDodge,
		pf.BonusCircumstance,
		pf.BonusUntyped,
		pf.BonusPenalty,
	}
	for _, bt := range stacking {
		assert.True(t, bt.Stacks(), "%s should stack", bt)
	}

	nonStacking := []pf.BonusType{
		pf.BonusArmor,
		pf.BonusShield,
		pf.BonusEnhancement,
		pf.BonusDeflection,
		pf.BonusMorale,
		pf.BonusResistance,
		pf.BonusTrait,
		pf.BonusNaturalArmor,
		pf.BonusSize,
		pf.BonusLuck,
	}
	for _, bt := range nonStacking {
		assert.False(t, bt.Stacks(), "%s should not stack", bt)
	}
}

func TestParseBonusType(t *testing.T) {
	assert.Equal(t, pf.BonusDodge, pf.ParseBonusType("dodge"))
	assert.Equal(t, pf.BonusDodge, pf.ParseBonusType("  Dodge "))
	assert.Equal(t, pf.BonusNaturalArmor, pf.ParseBonusType("natural armor"))
	assert.Equal(t, pf.BonusNaturalArmor, pf.ParseBonusType("natural"))

	// Unknown and empty names degrade to untyped.
	assert.Equal(t, pf.BonusUntyped, pf.ParseBonusType("blessed"))
	assert.Equal(t, pf.BonusUntyped, pf.ParseBonusType(""))
}

func TestBABProgression(t *testing.T) {
	tests := []struct {
		progression pf.BABProgression
		level       int32
		want        int32
	}{
		{pf.BABFull, 1, 1},
		{pf.BABFull, 20, 20},
		{pf.BABThreeQuarter, 1, 0},
		{pf.BABThreeQuarter, 4, 3},
		{pf.BABThreeQuarter, 20, 15},
		{pf.BABHalf, 1, 0},
		{pf.BABHalf, 20, 10},
		{pf.BABFull, 0, 0},
		{pf.BABFull, -3, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.progression.Base(tc.level),
			"%s at level %d", tc.progression, tc.level)
	}
}

func TestSaveProgression(t *testing.T) {
	tests := []struct {
		progression pf.SaveProgression
		level       int32
		want        int32
	}{
		{pf.SaveGood, 1, 2},
		{pf.SaveGood, 2, 3},
		{pf.SaveGood, 20, 12},
		{pf.SavePoor, 1, 0},
		{pf.SavePoor, 3, 1},
		{pf.SavePoor, 20, 6},
		{pf.SaveGood, 0, 0},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, tc.progression.Base(tc.level),
			"%s at level %d", tc.progression, tc.level)
	}
}

func TestSizeModifiers(t *testing.T) {
	// AC steps are monotonically decreasing from fine to colossal.
	sizes := []pf.SizeCategory{
		pf.SizeFine, pf.SizeDiminutive, pf.SizeTiny, pf.SizeSmall,
		pf.SizeMedium, pf.SizeLarge, pf.SizeHuge, pf.SizeGargantuan,
		pf.SizeColossal,
	}
	for i := 1; i < len(sizes); i++ {
		assert.Greater(t, sizes[i-1].ACModifier(), sizes[i].ACModifier(),
			"%s should have a higher AC step than %s", sizes[i-1], sizes[i])
	}

	assert.Equal(t, int32(0), pf.SizeMedium.ACModifier())
	assert.Equal(t, int32(-1), pf.SizeLarge.ACModifier())
	assert.Equal(t, int32(1), pf.SizeLarge.SpecialModifier())
	assert.Equal(t, int32(1), pf.SizeSmall.ACModifier())
	assert.Equal(t, int32(-1), pf.SizeSmall.SpecialModifier())
}

func TestFeatureKey(t *testing.T) {
	assert.Equal(t, "feat.power_attack", pf.FeatureKey(pf.CategoryFeat, "Power Attack"))
	assert.Equal(t, "feat.power_attack", pf.FeatureKey(pf.CategoryFeat, "power-attack"))
	assert.Equal(t, "class.rage", pf.FeatureKey(pf.CategoryClassFeature, " Rage "))
}

func TestTotalLevel(t *testing.T) {
	record := &pf.CharacterRecord{
		Classes: []pf.ClassSelection{
			{ClassID: "fighter", Level: 3},
			{ClassID: "rogue", Level: 2},
		},
	}
	assert.Equal(t, int32(5), record.TotalLevel())
}
