package pfcalc

import (
	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// applyEquipment contributes equipped gear to the ledger. Armor adds an
// armor-typed AC bonus plus a separate enhancement-typed one when present
// (different stacking groups, both apply); the max-dex cap is entity side
// data, not a ledger entry. Weapon enhancement hits both attack and weapon
// damage; masterwork without enhancement is a flat +1 attack only.
func (p *pipeline) applyEquipment(e *Entity) {
	for i := range e.Record().Equipment {
		item := &e.Record().Equipment[i]
		if !item.Equipped {
			continue
		}

		label := item.Label()

		switch item.Slot {
		case pf.SlotArmor:
			if item.ArmorBonus != 0 {
				p.ledger.AddBonus(e, pf.TargetAC, item.ArmorBonus, pf.BonusArmor, label)
			}
			if item.Enhancement > 0 {
				p.ledger.AddBonus(e, pf.TargetAC, item.Enhancement, pf.BonusEnhancement, label)
			}
			if item.MaxDexBonus != nil {
				e.CapMaxDex(*item.MaxDexBonus)
			}

		case pf.SlotWeapon:
			target := pf.AttackTarget(item.AttackKind)
			switch {
			case item.Enhancement > 0:
				p.ledger.AddBonus(e, target, item.Enhancement, pf.BonusEnhancement, label)
				p.ledger.AddBonus(e, pf.TargetWeaponDmg, item.Enhancement, pf.BonusEnhancement, label)
			case item.Masterwork:
				p.ledger.AddBonus(e, target, 1, pf.BonusEnhancement, label)
			}
		}

		p.extractBenefits(e, label, item.Benefits)
	}
}
