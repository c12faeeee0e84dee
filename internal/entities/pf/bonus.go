package pf

import "strings"

// BonusType classifies a bonus for stacking purposes. The set is closed:
// content uses free-text type names, which parse into one of these values.
type BonusType string

// Bonus types
const (
	BonusAlchemical   BonusType = "alchemical"
	BonusArmor        BonusType = "armor"
	BonusCircumstance BonusType = "circumstance"
	BonusCompetence   BonusType = "competence"
	BonusDeflection   BonusType = "deflection"
	BonusDodge        BonusType = "dodge"
	BonusEnhancement  BonusType = "enhancement"
	BonusInherent     BonusType = "inherent"
	BonusInsight      BonusType = "insight"
	BonusLuck         BonusType = "luck"
	BonusMorale       BonusType = "morale"
	BonusNaturalArmor BonusType = "natural_armor"
	BonusProfane      BonusType = "profane"
	BonusRacial       BonusType = "racial"
	BonusResistance   BonusType = "resistance"
	BonusSacred       BonusType = "sacred"
	BonusShield       BonusType = "shield"
	BonusSize         BonusType = "size"
	BonusTrait        BonusType = "trait"
	BonusUntyped      BonusType = "untyped"
	BonusPenalty      BonusType = "penalty"
)

// Stacks reports whether multiple bonuses of this type add together.
// Non-stacking types keep only the single highest contribution.
func (b BonusType) Stacks() bool {
	switch b {
	case BonusDodge, BonusCircumstance, BonusUntyped, BonusPenalty:
		return true
	default:
		return false
	}
}

// IsPenalty reports whether this type always applies additively
// regardless of sign or magnitude ordering.
func (b BonusType) IsPenalty() bool {
	return b == BonusPenalty
}

// String returns the string representation of the bonus type
func (b BonusType) String() string {
	return string(b)
}

var bonusTypeNames = map[string]BonusType{
	string(BonusAlchemical):   BonusAlchemical,
	string(BonusArmor):        BonusArmor,
	string(BonusCircumstance): BonusCircumstance,
	string(BonusCompetence):   BonusCompetence,
	string(BonusDeflection):   BonusDeflection,
	string(BonusDodge):        BonusDodge,
	string(BonusEnhancement):  BonusEnhancement,
	string(BonusInherent):     BonusInherent,
	string(BonusInsight):      BonusInsight,
	string(BonusLuck):         BonusLuck,
	string(BonusMorale):       BonusMorale,
	string(BonusNaturalArmor): BonusNaturalArmor,
	"natural armor":           BonusNaturalArmor,
	"natural":                 BonusNaturalArmor,
	string(BonusProfane):      BonusProfane,
	string(BonusRacial):       BonusRacial,
	string(BonusResistance):   BonusResistance,
	string(BonusSacred):       BonusSacred,
	string(BonusShield):       BonusShield,
	string(BonusSize):         BonusSize,
	string(BonusTrait):        BonusTrait,
	string(BonusUntyped):      BonusUntyped,
	string(BonusPenalty):      BonusPenalty,
}

// ParseBonusType maps a free-text type name from content onto the closed
// enumeration. Unknown or empty names degrade to BonusUntyped so a typo in
// content can never silently win a typed stacking group.
func ParseBonusType(name string) BonusType {
	key := strings.ToLower(strings.TrimSpace(name))
	if bt, ok := bonusTypeNames[key]; ok {
		return bt
	}
	return BonusUntyped
}
