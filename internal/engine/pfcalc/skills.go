package pfcalc

import (
	"fmt"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// classSkillBonus is the flat bonus for a trained class skill
const classSkillBonus = 3

// SkillResolver produces per-skill breakdowns
type SkillResolver struct {
	ledger    *Ledger
	abilities *AbilityResolver
}

// buildClassSkillSet collects every selected class's class-skill list into
// one set on the entity. Built once per pipeline run.
func buildClassSkillSet(e *Entity) {
	set := make(map[pf.SkillID]bool)
	for _, c := range e.Record().Classes {
		for _, s := range c.ClassSkills {
			set[s] = true
		}
	}
	e.Set(propClassSkills, set)
}

// IsClassSkill reports whether any selected class lists the skill
func (r *SkillResolver) IsClassSkill(e *Entity, id pf.SkillID) bool {
	set, _ := e.props[propClassSkills].(map[pf.SkillID]bool)
	return set[id]
}

// ranks returns the total ranks invested in a skill
func (r *SkillResolver) ranks(e *Entity, id pf.SkillID) int32 {
	for _, s := range e.Record().Skills {
		if s.SkillID == id {
			return s.Ranks()
		}
	}
	return 0
}

// Breakdown returns the explained skill total: ability modifier + ranks +
// class-skill bonus (with 1+ rank) + ledger contributions. Trained-only
// skills with no ranks are reported with the trained-only override rather
// than omitted.
func (r *SkillResolver) Breakdown(e *Entity, id pf.SkillID) pf.ValueWithBreakdown {
	info, known := pf.SkillTable[id]
	if !known {
		info = pf.SkillInfo{Name: string(id), Ability: pf.AbilityIntelligence}
	}

	abilityMod := r.abilities.Modifier(e, info.Ability)
	ranks := r.ranks(e, id)

	synthetic := []pf.Modifier{
		{Source: fmt.Sprintf("%s modifier", abilityLabels[info.Ability]), Value: abilityMod},
	}
	if ranks > 0 {
		synthetic = append(synthetic, pf.Modifier{Source: "Ranks", Value: ranks})
		if r.IsClassSkill(e, id) {
			synthetic = append(synthetic, pf.Modifier{Source: "Class skill", Value: classSkillBonus})
		}
	}

	var overrides *pf.Overrides
	if info.TrainedOnly && ranks == 0 {
		overrides = &pf.Overrides{TrainedOnly: true}
	}

	return r.ledger.compose(e, composeSpec{
		label:     info.Name,
		synthetic: synthetic,
		targets:   []string{pf.SkillTarget(id)},
		overrides: overrides,
	})
}
