package pf

// CharacterRecord is the normalized raw character: the player's choices as
// stored, before any rule resolution. The calculation engine treats it as
// immutable input.
type CharacterRecord struct {
	ID        string `json:"id"`
	PlayerID  string `json:"player_id"`
	Name      string `json:"name"`
	Ancestry  string `json:"ancestry,omitempty"`
	CreatedAt int64  `json:"created_at"`
	UpdatedAt int64  `json:"updated_at"`

	// BaseSize is the ancestry size before any override
	BaseSize SizeCategory `json:"base_size"`

	AbilityScores map[Ability]int32 `json:"ability_scores"`

	Classes []ClassSelection `json:"classes,omitempty"`
	Skills  []SkillSelection `json:"skills,omitempty"`

	// Selections holds one row per selected feature (traits, archetypes,
	// class features, discoveries, talents, ki powers, bloodlines, feats,
	// corruptions, known spells, ABP choices), each with its nested
	// benefit sub-records.
	Selections []FeatureSelection `json:"selections,omitempty"`

	Equipment []EquipmentSelection `json:"equipment,omitempty"`

	FavoredClassBonuses []FavoredClassBonus `json:"favored_class_bonuses,omitempty"`

	// ActiveStates are stateful features currently toggled on (rage,
	// active spells). Applied last in the pipeline.
	ActiveStates []FeatureSelection `json:"active_states,omitempty"`
}

// TotalLevel returns the sum of all class levels
func (r *CharacterRecord) TotalLevel() int32 {
	var total int32
	for _, c := range r.Classes {
		total += c.Level
	}
	return total
}

// SelectionsByCategory returns the selection rows for one category,
// preserving record order
func (r *CharacterRecord) SelectionsByCategory(cat FeatureCategory) []FeatureSelection {
	var out []FeatureSelection
	for _, s := range r.Selections {
		if s.Category == cat {
			out = append(out, s)
		}
	}
	return out
}

// ClassSelection is one row per selected class, carrying the class
// progression data the resolvers need
type ClassSelection struct {
	ClassID     string                     `json:"class_id"`
	Name        string                     `json:"name"`
	Level       int32                      `json:"level"`
	HitDie      int32                      `json:"hit_die"`
	BAB         BABProgression             `json:"bab"`
	Saves       map[SaveID]SaveProgression `json:"saves"`
	ClassSkills []SkillID                  `json:"class_skills,omitempty"`
}

// SkillSelection tracks rank purchases for one skill. RankLevels lists the
// character levels at which a rank was bought, one point per entry, kept
// per level for favored-class-bonus auditing.
type SkillSelection struct {
	SkillID    SkillID `json:"skill_id"`
	RankLevels []int32 `json:"rank_levels"`
}

// Ranks returns the total ranks invested
func (s *SkillSelection) Ranks() int32 {
	return int32(len(s.RankLevels))
}

// FeatureSelection is one selected feature row. Benefits mirror the
// feature definition's declared bonuses at selection time and serve as the
// extraction source when no definition is stored.
type FeatureSelection struct {
	Category    FeatureCategory   `json:"category"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name,omitempty"`
	ClassID     string            `json:"class_id,omitempty"`
	Level       int32             `json:"level,omitempty"`
	Options     map[string]string `json:"options,omitempty"`
	Benefits    []Benefit         `json:"benefits,omitempty"`
}

// Key returns the stable feature identifier for this selection
func (s *FeatureSelection) Key() string {
	return FeatureKey(s.Category, s.Name)
}

// Label returns the display name, falling back to the normalized name
func (s *FeatureSelection) Label() string {
	if s.DisplayName != "" {
		return s.DisplayName
	}
	return NormalizeFeatureName(s.Name)
}

// EquipmentSlot distinguishes how an equipment row contributes
type EquipmentSlot string

// Equipment slots
const (
	SlotArmor  EquipmentSlot = "armor"
	SlotWeapon EquipmentSlot = "weapon"
	SlotGear   EquipmentSlot = "gear"
)

// EquipmentSelection is one equipment row. Armor rows contribute an
// armor-typed AC bonus plus an optional enhancement-typed one; weapon rows
// contribute enhancement bonuses to attack and weapon damage. Gear rows
// only carry Benefits.
type EquipmentSelection struct {
	Slot        EquipmentSlot `json:"slot"`
	Name        string        `json:"name"`
	DisplayName string        `json:"display_name,omitempty"`
	Equipped    bool          `json:"equipped"`

	// Armor fields
	ArmorBonus  int32  `json:"armor_bonus,omitempty"`
	MaxDexBonus *int32 `json:"max_dex_bonus,omitempty"`

	// Weapon fields
	AttackKind AttackKind `json:"attack_kind,omitempty"`
	Masterwork bool       `json:"masterwork,omitempty"`

	// Shared
	Enhancement int32     `json:"enhancement,omitempty"`
	Benefits    []Benefit `json:"benefits,omitempty"`
}

// Label returns the display name, falling back to the item name
func (e *EquipmentSelection) Label() string {
	if e.DisplayName != "" {
		return e.DisplayName
	}
	return e.Name
}

// FavoredClassChoice is what a favored-class level grants
type FavoredClassChoice string

// Favored class choices
const (
	FavoredHP    FavoredClassChoice = "hp"
	FavoredSkill FavoredClassChoice = "skill"
	FavoredOther FavoredClassChoice = "other"
)

// FavoredClassBonus is one row per favored-class level. Choice "other"
// applies the row's Benefits (racial alternatives).
type FavoredClassBonus struct {
	ClassID  string             `json:"class_id"`
	Level    int32              `json:"level"`
	Choice   FavoredClassChoice `json:"choice"`
	Benefits []Benefit          `json:"benefits,omitempty"`
}
