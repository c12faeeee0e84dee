package pfcalc

import (
	"github.com/herosheet/sheet-api/internal/entities/pf"
)

var abilityLabels = map[pf.Ability]string{
	pf.AbilityStrength:     "Strength",
	pf.AbilityDexterity:    "Dexterity",
	pf.AbilityConstitution: "Constitution",
	pf.AbilityIntelligence: "Intelligence",
	pf.AbilityWisdom:       "Wisdom",
	pf.AbilityCharisma:     "Charisma",
}

// AbilityModifier computes the ability modifier: floor((score - 10) / 2).
// Integer division truncates toward zero, so odd scores below 10 need an
// adjustment to floor properly.
func AbilityModifier(score int32) int32 {
	modifier := (score - 10) / 2
	if score < 10 && (score-10)%2 != 0 {
		modifier--
	}
	return modifier
}

// AbilityResolver produces ability score breakdowns and modifiers
type AbilityResolver struct {
	ledger *Ledger
}

// Breakdown returns the explained ability score: the record's base score
// as a synthetic modifier plus ledger contributions on the ability target.
func (r *AbilityResolver) Breakdown(e *Entity, a pf.Ability) pf.ValueWithBreakdown {
	base := e.Record().AbilityScores[a]

	return r.ledger.compose(e, composeSpec{
		label: abilityLabels[a],
		synthetic: []pf.Modifier{
			{Source: "Base score", Value: base},
		},
		targets: []string{pf.AbilityTarget(a)},
	})
}

// Modifier returns the ability modifier for the fully resolved score
func (r *AbilityResolver) Modifier(e *Entity, a pf.Ability) int32 {
	return AbilityModifier(r.Breakdown(e, a).Total)
}
