package pf

// Modifier is one contribution that counted toward a total
type Modifier struct {
	Source string `json:"source"`
	Value  int32  `json:"value"`
}

// Overrides carries non-numeric qualifiers on a computed value
type Overrides struct {
	// TrainedOnly marks a skill that cannot be used untrained and has no
	// ranks invested. The total is still reported for audit.
	TrainedOnly bool `json:"trained_only,omitempty"`
}

// ValueWithBreakdown is an explained stat: the final total plus every
// contribution that actually counted. Bonuses dropped by the stacking rule
// do not appear. Recomputed from scratch on every calculation pass.
type ValueWithBreakdown struct {
	Label     string     `json:"label"`
	Total     int32      `json:"total"`
	Modifiers []Modifier `json:"modifiers"`
	Overrides *Overrides `json:"overrides,omitempty"`
}

// ProcessedFeature is one feature the pipeline applied, in application
// order. Replaced base features are excluded; their replacements appear
// under the archetype's feature key.
type ProcessedFeature struct {
	Key         string          `json:"key"`
	DisplayName string          `json:"display_name"`
	Category    FeatureCategory `json:"category"`
	Altered     bool            `json:"altered,omitempty"`
	AlteredBy   string          `json:"altered_by,omitempty"`
	ArchetypeID string          `json:"archetype_id,omitempty"`
}

// SkillRanks reports rank investment for one skill with ranks
type SkillRanks struct {
	SkillID    SkillID `json:"skill_id"`
	Name       string  `json:"name"`
	ClassSkill bool    `json:"class_skill"`
	RankLevels []int32 `json:"rank_levels"`
}

// CharacterSheet is the fully derived, fully explained character. Every
// numeric value traces back to its sources through its breakdown.
type CharacterSheet struct {
	CharacterID string `json:"character_id"`
	Name        string `json:"name"`
	TotalLevel  int32  `json:"total_level"`

	Abilities        map[Ability]ValueWithBreakdown `json:"abilities"`
	AbilityModifiers map[Ability]int32              `json:"ability_modifiers"`

	Saves map[SaveID]ValueWithBreakdown `json:"saves"`

	ArmorClass   ValueWithBreakdown `json:"armor_class"`
	TouchAC      ValueWithBreakdown `json:"touch_ac"`
	FlatFootedAC ValueWithBreakdown `json:"flat_footed_ac"`

	Initiative ValueWithBreakdown `json:"initiative"`
	CMB        ValueWithBreakdown `json:"cmb"`
	CMD        ValueWithBreakdown `json:"cmd"`

	Attacks map[AttackKind]ValueWithBreakdown `json:"attacks"`

	Skills     map[SkillID]ValueWithBreakdown `json:"skills"`
	SkillRanks []SkillRanks                   `json:"skill_ranks"`

	Features []ProcessedFeature `json:"features"`
}
