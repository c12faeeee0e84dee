package pf

// SkillID identifies a skill
type SkillID string

// Skills
const (
	SkillAcrobatics       SkillID = "acrobatics"
	SkillAppraise         SkillID = "appraise"
	SkillBluff            SkillID = "bluff"
	SkillClimb            SkillID = "climb"
	SkillCraft            SkillID = "craft"
	SkillDiplomacy        SkillID = "diplomacy"
	SkillDisableDevice    SkillID = "disable_device"
	SkillDisguise         SkillID = "disguise"
	SkillEscapeArtist     SkillID = "escape_artist"
	SkillFly              SkillID = "fly"
	SkillHandleAnimal     SkillID = "handle_animal"
	SkillHeal             SkillID = "heal"
	SkillIntimidate       SkillID = "intimidate"
	SkillKnowArcana       SkillID = "knowledge_arcana"
	SkillKnowDungeoneer   SkillID = "knowledge_dungeoneering"
	SkillKnowLocal        SkillID = "knowledge_local"
	SkillKnowNature       SkillID = "knowledge_nature"
	SkillKnowReligion     SkillID = "knowledge_religion"
	SkillLinguistics      SkillID = "linguistics"
	SkillPerception       SkillID = "perception"
	SkillPerform          SkillID = "perform"
	SkillProfession       SkillID = "profession"
	SkillRide             SkillID = "ride"
	SkillSenseMotive      SkillID = "sense_motive"
	SkillSleightOfHand    SkillID = "sleight_of_hand"
	SkillSpellcraft       SkillID = "spellcraft"
	SkillStealth          SkillID = "stealth"
	SkillSurvival         SkillID = "survival"
	SkillSwim             SkillID = "swim"
	SkillUseMagicDevice   SkillID = "use_magic_device"
)

// SkillInfo describes a skill's display name, governing ability, and
// whether it can be used without ranks
type SkillInfo struct {
	Name        string
	Ability     Ability
	TrainedOnly bool
}

// SkillTable maps every skill to its info
var SkillTable = map[SkillID]SkillInfo{
	SkillAcrobatics:     {Name: "Acrobatics", Ability: AbilityDexterity},
	SkillAppraise:       {Name: "Appraise", Ability: AbilityIntelligence},
	SkillBluff:          {Name: "Bluff", Ability: AbilityCharisma},
	SkillClimb:          {Name: "Climb", Ability: AbilityStrength},
	SkillCraft:          {Name: "Craft", Ability: AbilityIntelligence},
	SkillDiplomacy:      {Name: "Diplomacy", Ability: AbilityCharisma},
	SkillDisableDevice:  {Name: "Disable Device", Ability: AbilityDexterity, TrainedOnly: true},
	SkillDisguise:       {Name: "Disguise", Ability: AbilityCharisma},
	SkillEscapeArtist:   {Name: "Escape Artist", Ability: AbilityDexterity},
	SkillFly:            {Name: "Fly", Ability: AbilityDexterity},
	SkillHandleAnimal:   {Name: "Handle Animal", Ability: AbilityCharisma, TrainedOnly: true},
	SkillHeal:           {Name: "Heal", Ability: AbilityWisdom},
	SkillIntimidate:     {Name: "Intimidate", Ability: AbilityCharisma},
	SkillKnowArcana:     {Name: "Knowledge (arcana)", Ability: AbilityIntelligence, TrainedOnly: true},
	SkillKnowDungeoneer: {Name: "Knowledge (dungeoneering)", Ability: AbilityIntelligence, TrainedOnly: true},
	SkillKnowLocal:      {Name: "Knowledge (local)", Ability: AbilityIntelligence, TrainedOnly: true},
	SkillKnowNature:     {Name: "Knowledge (nature)", Ability: AbilityIntelligence, TrainedOnly: true},
	SkillKnowReligion:   {Name: "Knowledge (religion)", Ability: AbilityIntelligence, TrainedOnly: true},
	SkillLinguistics:    {Name: "Linguistics", Ability: AbilityIntelligence, TrainedOnly: true},
	SkillPerception:     {Name: "Perception", Ability: AbilityWisdom},
	SkillPerform:        {Name: "Perform", Ability: AbilityCharisma},
	SkillProfession:     {Name: "Profession", Ability: AbilityWisdom, TrainedOnly: true},
	SkillRide:           {Name: "Ride", Ability: AbilityDexterity},
	SkillSenseMotive:    {Name: "Sense Motive", Ability: AbilityWisdom},
	SkillSleightOfHand:  {Name: "Sleight of Hand", Ability: AbilityDexterity, TrainedOnly: true},
	SkillSpellcraft:     {Name: "Spellcraft", Ability: AbilityIntelligence, TrainedOnly: true},
	SkillStealth:        {Name: "Stealth", Ability: AbilityDexterity},
	SkillSurvival:       {Name: "Survival", Ability: AbilityWisdom},
	SkillSwim:           {Name: "Swim", Ability: AbilityStrength},
	SkillUseMagicDevice: {Name: "Use Magic Device", Ability: AbilityCharisma, TrainedOnly: true},
}
