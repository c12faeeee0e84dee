package pfcalc

import (
	"github.com/herosheet/sheet-api/internal/entities/pf"
)

var saveLabels = map[pf.SaveID]string{
	pf.SaveFortitude: "Fortitude Save",
	pf.SaveReflex:    "Reflex Save",
	pf.SaveWill:      "Will Save",
}

var attackLabels = map[pf.AttackKind]string{
	pf.AttackMelee:  "Melee Attack",
	pf.AttackRanged: "Ranged Attack",
	pf.AttackBomb:   "Bomb Attack",
}

// CombatResolver produces save, AC, attack, and combat-maneuver breakdowns
type CombatResolver struct {
	ledger    *Ledger
	abilities *AbilityResolver
}

// BAB sums base attack bonus across all selected classes
func (r *CombatResolver) BAB(e *Entity) int32 {
	var total int32
	for _, c := range e.Record().Classes {
		total += c.BAB.Base(c.Level)
	}
	return total
}

// baseSave sums the class save progressions for one save
func (r *CombatResolver) baseSave(e *Entity, id pf.SaveID) int32 {
	var total int32
	for _, c := range e.Record().Classes {
		total += c.Saves[id].Base(c.Level)
	}
	return total
}

// cappedDexMod applies the armor max-dex cap to the dexterity modifier
func (r *CombatResolver) cappedDexMod(e *Entity) int32 {
	mod := r.abilities.Modifier(e, pf.AbilityDexterity)
	if maxDex, ok := e.MaxDex(); ok && mod > maxDex {
		return maxDex
	}
	return mod
}

// SaveBreakdown returns the explained saving throw. Entries on the shared
// "saves" target (resistance bonuses and similar) stack with the specific
// save's entries through a single stacking pass.
func (r *CombatResolver) SaveBreakdown(e *Entity, id pf.SaveID) pf.ValueWithBreakdown {
	ability := pf.SaveAbility[id]
	synthetic := []pf.Modifier{
		{Source: "Base save", Value: r.baseSave(e, id)},
		{Source: abilityLabels[ability] + " modifier", Value: r.abilities.Modifier(e, ability)},
	}

	return r.ledger.compose(e, composeSpec{
		label:     saveLabels[id],
		synthetic: synthetic,
		targets:   []string{pf.SaveTarget(id), pf.TargetSaves},
	})
}

// sizeModifier returns the effective size's AC/attack step as a synthetic
// modifier, or nothing at medium
func (r *CombatResolver) sizeModifier(e *Entity) []pf.Modifier {
	if step := e.EffectiveSize().ACModifier(); step != 0 {
		return []pf.Modifier{{Source: "Size", Value: step}}
	}
	return nil
}

// ACBreakdown returns normal armor class: 10 + capped dex + size + every
// counted ledger entry on the AC target
func (r *CombatResolver) ACBreakdown(e *Entity) pf.ValueWithBreakdown {
	synthetic := []pf.Modifier{
		{Source: "Dexterity modifier", Value: r.cappedDexMod(e)},
	}
	synthetic = append(synthetic, r.sizeModifier(e)...)

	return r.ledger.compose(e, composeSpec{
		label:     "Armor Class",
		base:      10,
		synthetic: synthetic,
		targets:   []string{pf.TargetAC},
	})
}

// touch AC ignores worn protection: armor, shield, natural armor, and the
// enhancement entries that ride on them
func touchExcludes(entry BonusEntry) bool {
	switch entry.Type {
	case pf.BonusArmor, pf.BonusShield, pf.BonusNaturalArmor, pf.BonusEnhancement:
		return false
	default:
		return true
	}
}

// TouchACBreakdown returns touch armor class
func (r *CombatResolver) TouchACBreakdown(e *Entity) pf.ValueWithBreakdown {
	synthetic := []pf.Modifier{
		{Source: "Dexterity modifier", Value: r.cappedDexMod(e)},
	}
	synthetic = append(synthetic, r.sizeModifier(e)...)

	return r.ledger.compose(e, composeSpec{
		label:     "Touch AC",
		base:      10,
		synthetic: synthetic,
		targets:   []string{pf.TargetAC},
		filter:    touchExcludes,
	})
}

// FlatFootedACBreakdown returns flat-footed armor class: dodge bonuses and
// any positive dexterity contribution are lost, dexterity penalties stay
func (r *CombatResolver) FlatFootedACBreakdown(e *Entity) pf.ValueWithBreakdown {
	var synthetic []pf.Modifier
	if dex := r.cappedDexMod(e); dex < 0 {
		synthetic = append(synthetic, pf.Modifier{Source: "Dexterity modifier", Value: dex})
	}
	synthetic = append(synthetic, r.sizeModifier(e)...)

	return r.ledger.compose(e, composeSpec{
		label:     "Flat-Footed AC",
		base:      10,
		synthetic: synthetic,
		targets:   []string{pf.TargetAC},
		filter: func(entry BonusEntry) bool {
			return entry.Type != pf.BonusDodge
		},
	})
}

// InitiativeBreakdown returns the explained initiative modifier
func (r *CombatResolver) InitiativeBreakdown(e *Entity) pf.ValueWithBreakdown {
	synthetic := []pf.Modifier{
		{Source: "Dexterity modifier", Value: r.abilities.Modifier(e, pf.AbilityDexterity)},
	}

	return r.ledger.compose(e, composeSpec{
		label:     "Initiative",
		synthetic: synthetic,
		targets:   []string{pf.TargetInitiative},
	})
}

// attackAbility returns the governing ability for an attack kind
func (r *CombatResolver) attackAbility(e *Entity, kind pf.AttackKind) pf.Ability {
	switch kind {
	case pf.AttackMelee:
		if e.Finesse() {
			return pf.AbilityDexterity
		}
		return pf.AbilityStrength
	default:
		return pf.AbilityDexterity
	}
}

// AttackBreakdown returns the explained attack bonus for one kind. Shared
// "attack" entries stack with kind-specific entries in one pass.
func (r *CombatResolver) AttackBreakdown(e *Entity, kind pf.AttackKind) pf.ValueWithBreakdown {
	ability := r.attackAbility(e, kind)
	synthetic := []pf.Modifier{
		{Source: "Base attack bonus", Value: r.BAB(e)},
		{Source: abilityLabels[ability] + " modifier", Value: r.abilities.Modifier(e, ability)},
	}
	synthetic = append(synthetic, r.sizeModifier(e)...)

	return r.ledger.compose(e, composeSpec{
		label:     attackLabels[kind],
		synthetic: synthetic,
		targets:   []string{pf.AttackTarget(kind), pf.TargetAttack},
	})
}

// CMBBreakdown returns the explained combat maneuver bonus
func (r *CombatResolver) CMBBreakdown(e *Entity) pf.ValueWithBreakdown {
	synthetic := []pf.Modifier{
		{Source: "Base attack bonus", Value: r.BAB(e)},
		{Source: "Strength modifier", Value: r.abilities.Modifier(e, pf.AbilityStrength)},
	}
	if step := e.EffectiveSize().SpecialModifier(); step != 0 {
		synthetic = append(synthetic, pf.Modifier{Source: "Size", Value: step})
	}

	return r.ledger.compose(e, composeSpec{
		label:     "CMB",
		synthetic: synthetic,
		targets:   []string{pf.TargetCMB},
	})
}

// CMDBreakdown returns the explained combat maneuver defense
func (r *CombatResolver) CMDBreakdown(e *Entity) pf.ValueWithBreakdown {
	synthetic := []pf.Modifier{
		{Source: "Base attack bonus", Value: r.BAB(e)},
		{Source: "Strength modifier", Value: r.abilities.Modifier(e, pf.AbilityStrength)},
		{Source: "Dexterity modifier", Value: r.abilities.Modifier(e, pf.AbilityDexterity)},
	}
	if step := e.EffectiveSize().SpecialModifier(); step != 0 {
		synthetic = append(synthetic, pf.Modifier{Source: "Size", Value: step})
	}

	return r.ledger.compose(e, composeSpec{
		label:     "CMD",
		base:      10,
		synthetic: synthetic,
		targets:   []string{pf.TargetCMD},
	})
}
