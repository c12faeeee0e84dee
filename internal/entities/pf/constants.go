package pf

// Ability identifies one of the six ability scores
type Ability string

// Abilities
const (
	AbilityStrength     Ability = "strength"
	AbilityDexterity    Ability = "dexterity"
	AbilityConstitution Ability = "constitution"
	AbilityIntelligence Ability = "intelligence"
	AbilityWisdom       Ability = "wisdom"
	AbilityCharisma     Ability = "charisma"
)

// Abilities lists the six abilities in presentation order
var Abilities = []Ability{
	AbilityStrength,
	AbilityDexterity,
	AbilityConstitution,
	AbilityIntelligence,
	AbilityWisdom,
	AbilityCharisma,
}

// SaveID identifies a saving throw
type SaveID string

// Saving throws
const (
	SaveFortitude SaveID = "fortitude"
	SaveReflex    SaveID = "reflex"
	SaveWill      SaveID = "will"
)

// Saves lists the saving throws in presentation order
var Saves = []SaveID{SaveFortitude, SaveReflex, SaveWill}

// SaveAbility maps each save to its governing ability
var SaveAbility = map[SaveID]Ability{
	SaveFortitude: AbilityConstitution,
	SaveReflex:    AbilityDexterity,
	SaveWill:      AbilityWisdom,
}

// AttackKind identifies an attack breakdown
type AttackKind string

// Attack kinds
const (
	AttackMelee  AttackKind = "melee"
	AttackRanged AttackKind = "ranged"
	AttackBomb   AttackKind = "bomb"
)

// AttackKinds lists the attack kinds in presentation order
var AttackKinds = []AttackKind{AttackMelee, AttackRanged, AttackBomb}

// Bonus target keys. Features contribute bonuses to these names; resolvers
// read them back. Unknown targets simply start a new ledger row, so content
// may also use targets nothing reads yet.
const (
	TargetAC          = "ac"
	TargetInitiative  = "initiative"
	TargetCMB         = "cmb"
	TargetCMD         = "cmd"
	TargetAttack      = "attack"
	TargetAttackMelee = "attack_melee"
	TargetAttackRange = "attack_ranged"
	TargetAttackBomb  = "attack_bomb"
	TargetWeaponDmg   = "damage_weapon"
	TargetSaves       = "saves"
	TargetHP          = "hp"
	TargetSkillPoints = "skill_points"
	TargetSpeed       = "speed"
)

// SkillTarget returns the ledger target key for a skill
func SkillTarget(id SkillID) string {
	return "skill." + string(id)
}

// SaveTarget returns the ledger target key for a save
func SaveTarget(id SaveID) string {
	return string(id)
}

// AbilityTarget returns the ledger target key for an ability score
func AbilityTarget(a Ability) string {
	return string(a)
}

// AttackTarget returns the ledger target key for an attack kind
func AttackTarget(k AttackKind) string {
	switch k {
	case AttackMelee:
		return TargetAttackMelee
	case AttackRanged:
		return TargetAttackRange
	case AttackBomb:
		return TargetAttackBomb
	default:
		return TargetAttack
	}
}

// SizeCategory is the ordered size enumeration
type SizeCategory int32

// Size categories, smallest to largest
const (
	SizeFine SizeCategory = iota
	SizeDiminutive
	SizeTiny
	SizeSmall
	SizeMedium
	SizeLarge
	SizeHuge
	SizeGargantuan
	SizeColossal
)

var sizeNames = map[SizeCategory]string{
	SizeFine:       "fine",
	SizeDiminutive: "diminutive",
	SizeTiny:       "tiny",
	SizeSmall:      "small",
	SizeMedium:     "medium",
	SizeLarge:      "large",
	SizeHuge:       "huge",
	SizeGargantuan: "gargantuan",
	SizeColossal:   "colossal",
}

// String returns the size name
func (s SizeCategory) String() string {
	if name, ok := sizeNames[s]; ok {
		return name
	}
	return "medium"
}

// ACModifier returns the size modifier applied to AC and attack rolls.
// Monotonic step function: smaller creatures are harder to hit.
func (s SizeCategory) ACModifier() int32 {
	switch s {
	case SizeFine:
		return 8
	case SizeDiminutive:
		return 4
	case SizeTiny:
		return 2
	case SizeSmall:
		return 1
	case SizeMedium:
		return 0
	case SizeLarge:
		return -1
	case SizeHuge:
		return -2
	case SizeGargantuan:
		return -4
	case SizeColossal:
		return -8
	default:
		return 0
	}
}

// SpecialModifier returns the special size modifier applied to CMB and CMD.
// Inverse sign of the AC step: bigger creatures shove harder.
func (s SizeCategory) SpecialModifier() int32 {
	return -s.ACModifier()
}

// BABProgression is a class base-attack-bonus progression
type BABProgression string

// BAB progressions
const (
	BABFull         BABProgression = "full"
	BABThreeQuarter BABProgression = "three_quarter"
	BABHalf         BABProgression = "half"
)

// Base returns the base attack bonus granted at the given class level
func (p BABProgression) Base(level int32) int32 {
	if level <= 0 {
		return 0
	}
	switch p {
	case BABFull:
		return level
	case BABThreeQuarter:
		return level * 3 / 4
	case BABHalf:
		return level / 2
	default:
		return 0
	}
}

// SaveProgression is a class saving-throw progression
type SaveProgression string

// Save progressions
const (
	SaveGood SaveProgression = "good"
	SavePoor SaveProgression = "poor"
)

// Base returns the base save bonus granted at the given class level
func (p SaveProgression) Base(level int32) int32 {
	if level <= 0 {
		return 0
	}
	switch p {
	case SaveGood:
		return 2 + level/2
	case SavePoor:
		return level / 3
	default:
		return 0
	}
}
