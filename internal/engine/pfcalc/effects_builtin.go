package pfcalc

import (
	"context"
	"strconv"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// optionValue reads an integer option off the selection row
func optionValue(sel *pf.FeatureSelection, key string, fallback int32) int32 {
	if sel == nil || sel.Options == nil {
		return fallback
	}
	raw, ok := sel.Options[key]
	if !ok {
		return fallback
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return int32(v)
}

// registerBuiltins installs the effect implementations that need logic
// beyond flat benefit extraction. Everything else in the content library
// flows through the fallback path.
func registerBuiltins(r *Registry) {
	// Automatic bonus progression choices carry their tier value as an
	// option on the selection row.
	r.Register(&effectFunc{
		key: "abp.resistance",
		apply: func(_ context.Context, inv *Invocation) error {
			v := optionValue(inv.Selection, "value", 1)
			inv.Ledger.AddBonus(inv.Entity, pf.TargetSaves, v, pf.BonusResistance, "ABP resistance")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "abp.armor_attunement",
		apply: func(_ context.Context, inv *Invocation) error {
			v := optionValue(inv.Selection, "value", 1)
			inv.Ledger.AddBonus(inv.Entity, pf.TargetAC, v, pf.BonusEnhancement, "ABP armor attunement")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "abp.weapon_attunement",
		apply: func(_ context.Context, inv *Invocation) error {
			v := optionValue(inv.Selection, "value", 1)
			inv.Ledger.AddBonus(inv.Entity, pf.TargetAttack, v, pf.BonusEnhancement, "ABP weapon attunement")
			inv.Ledger.AddBonus(inv.Entity, pf.TargetWeaponDmg, v, pf.BonusEnhancement, "ABP weapon attunement")
			return nil
		},
	})

	r.Register(&effectFunc{
		key: "trait.reactionary",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Ledger.AddBonus(inv.Entity, pf.TargetInitiative, 2, pf.BonusTrait, "Reactionary")
			return nil
		},
	})

	r.Register(&effectFunc{
		key: "feat.dodge",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Ledger.AddBonus(inv.Entity, pf.TargetAC, 1, pf.BonusDodge, "Dodge")
			inv.Ledger.AddBonus(inv.Entity, pf.TargetCMD, 1, pf.BonusDodge, "Dodge")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "feat.improved_initiative",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Ledger.AddBonus(inv.Entity, pf.TargetInitiative, 4, pf.BonusUntyped, "Improved Initiative")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "feat.iron_will",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Ledger.AddBonus(inv.Entity, pf.SaveTarget(pf.SaveWill), 2, pf.BonusUntyped, "Iron Will")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "feat.great_fortitude",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Ledger.AddBonus(inv.Entity, pf.SaveTarget(pf.SaveFortitude), 2, pf.BonusUntyped, "Great Fortitude")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "feat.lightning_reflexes",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Ledger.AddBonus(inv.Entity, pf.SaveTarget(pf.SaveReflex), 2, pf.BonusUntyped, "Lightning Reflexes")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "feat.toughness",
		apply: func(_ context.Context, inv *Invocation) error {
			hp := inv.Entity.Record().TotalLevel()
			if hp < 3 {
				hp = 3
			}
			inv.Ledger.AddBonus(inv.Entity, pf.TargetHP, hp, pf.BonusUntyped, "Toughness")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "feat.weapon_finesse",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Entity.SetFinesse()
			return nil
		},
	})

	// Monk AC bonus: wisdom modifier to AC and CMD while unarmored. The
	// precondition keeps it from applying under armor.
	r.Register(&effectFunc{
		key: "class.ac_bonus",
		applicable: func(e *Entity) bool {
			_, armored := e.MaxDex()
			return !armored
		},
		apply: func(_ context.Context, inv *Invocation) error {
			wis := inv.Abilities.Modifier(inv.Entity, pf.AbilityWisdom)
			if wis <= 0 {
				return nil
			}
			inv.Ledger.AddBonus(inv.Entity, pf.TargetAC, wis, pf.BonusUntyped, "AC bonus (Wisdom)")
			inv.Ledger.AddBonus(inv.Entity, pf.TargetCMD, wis, pf.BonusUntyped, "AC bonus (Wisdom)")
			return nil
		},
	})

	// Paladin divine grace: charisma modifier to all saves.
	r.Register(&effectFunc{
		key: "class.divine_grace",
		apply: func(_ context.Context, inv *Invocation) error {
			cha := inv.Abilities.Modifier(inv.Entity, pf.AbilityCharisma)
			if cha <= 0 {
				return nil
			}
			inv.Ledger.AddBonus(inv.Entity, pf.TargetSaves, cha, pf.BonusUntyped, "Divine Grace")
			return nil
		},
	})

	// Stateful features, applied in the active-states phase.
	r.Register(&effectFunc{
		key: "class.rage",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Ledger.AddBonus(inv.Entity, pf.AbilityTarget(pf.AbilityStrength), 4, pf.BonusMorale, "Rage")
			inv.Ledger.AddBonus(inv.Entity, pf.AbilityTarget(pf.AbilityConstitution), 4, pf.BonusMorale, "Rage")
			inv.Ledger.AddBonus(inv.Entity, pf.TargetAC, -2, pf.BonusPenalty, "Rage")
			return nil
		},
	})
	r.Register(&effectFunc{
		key: "spell.enlarge_person",
		apply: func(_ context.Context, inv *Invocation) error {
			inv.Entity.SetSizeOverride(pf.SizeLarge, 10)
			inv.Ledger.AddBonus(inv.Entity, pf.AbilityTarget(pf.AbilityStrength), 2, pf.BonusSize, "Enlarge Person")
			inv.Ledger.AddBonus(inv.Entity, pf.AbilityTarget(pf.AbilityDexterity), -2, pf.BonusPenalty, "Enlarge Person")
			return nil
		},
	})
}
