package pfcalc_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/herosheet/sheet-api/internal/engine"
	"github.com/herosheet/sheet-api/internal/engine/pfcalc"
	"github.com/herosheet/sheet-api/internal/entities/pf"
	featurerepo "github.com/herosheet/sheet-api/internal/repositories/feature"
)

type CalculatorTestSuite struct {
	suite.Suite
	ctx      context.Context
	features *featurerepo.InMemoryRepository
	adapter  *pfcalc.Adapter
}

func (s *CalculatorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.features = featurerepo.NewInMemory()

	adapter, err := pfcalc.NewAdapter(&pfcalc.AdapterConfig{
		FeatureRepo: s.features,
		Logger:      slog.Default(),
	})
	s.Require().NoError(err)
	s.adapter = adapter
}

func (s *CalculatorTestSuite) calculate(record *pf.CharacterRecord) *pf.CharacterSheet {
	out, err := s.adapter.CalculateCharacterSheet(s.ctx, &engine.CalculateCharacterSheetInput{
		Record: record,
	})
	s.Require().NoError(err)
	s.Require().NotNil(out.Sheet)
	return out.Sheet
}

// fighterRecord builds a baseline level-1 fighter
func fighterRecord() *pf.CharacterRecord {
	return &pf.CharacterRecord{
		ID:       "char_1",
		PlayerID: "player_1",
		Name:     "Valeria",
		BaseSize: pf.SizeMedium,
		AbilityScores: map[pf.Ability]int32{
			pf.AbilityStrength:     16,
			pf.AbilityDexterity:    14,
			pf.AbilityConstitution: 12,
			pf.AbilityIntelligence: 10,
			pf.AbilityWisdom:       10,
			pf.AbilityCharisma:     8,
		},
		Classes: []pf.ClassSelection{
			{
				ClassID: "fighter",
				Name:    "Fighter",
				Level:   1,
				HitDie:  10,
				BAB:     pf.BABFull,
				Saves: map[pf.SaveID]pf.SaveProgression{
					pf.SaveFortitude: pf.SaveGood,
					pf.SaveReflex:    pf.SavePoor,
					pf.SaveWill:      pf.SavePoor,
				},
				ClassSkills: []pf.SkillID{pf.SkillClimb, pf.SkillIntimidate, pf.SkillSwim},
			},
		},
	}
}

func (s *CalculatorTestSuite) TestBaselineUnarmored() {
	sheet := s.calculate(fighterRecord())

	s.Equal(int32(1), sheet.TotalLevel)

	// 10 + dex 2
	s.Equal(int32(12), sheet.ArmorClass.Total)
	s.Equal(int32(12), sheet.TouchAC.Total)
	// Flat-footed loses the positive dex contribution.
	s.Equal(int32(10), sheet.FlatFootedAC.Total)

	s.Equal(int32(2), sheet.Initiative.Total)

	// BAB 1 + str 3
	s.Equal(int32(4), sheet.Attacks[pf.AttackMelee].Total)
	// BAB 1 + dex 2
	s.Equal(int32(3), sheet.Attacks[pf.AttackRanged].Total)

	// Good fort at level 1 is 2, plus con 1.
	s.Equal(int32(3), sheet.Saves[pf.SaveFortitude].Total)
	// Poor reflex is 0, plus dex 2.
	s.Equal(int32(2), sheet.Saves[pf.SaveReflex].Total)
	s.Equal(int32(0), sheet.Saves[pf.SaveWill].Total)

	// CMB = BAB 1 + str 3; CMD = 10 + BAB 1 + str 3 + dex 2.
	s.Equal(int32(4), sheet.CMB.Total)
	s.Equal(int32(16), sheet.CMD.Total)

	s.Equal(int32(3), sheet.AbilityModifiers[pf.AbilityStrength])
	s.Equal(int32(-1), sheet.AbilityModifiers[pf.AbilityCharisma])
}

func (s *CalculatorTestSuite) TestDodgeFeat() {
	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{Category: pf.CategoryFeat, Name: "Dodge", DisplayName: "Dodge"},
	}

	sheet := s.calculate(record)

	s.Equal(int32(13), sheet.ArmorClass.Total)
	// Dodge applies to touch but never to flat-footed.
	s.Equal(int32(13), sheet.TouchAC.Total)
	s.Equal(int32(10), sheet.FlatFootedAC.Total)
	// Dodge also raises CMD.
	s.Equal(int32(17), sheet.CMD.Total)
}

func (s *CalculatorTestSuite) TestImprovedInitiative() {
	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{Category: pf.CategoryFeat, Name: "Improved Initiative"},
	}

	sheet := s.calculate(record)
	s.Equal(int32(6), sheet.Initiative.Total)
}

func (s *CalculatorTestSuite) TestArmorAndEnhancement() {
	record := fighterRecord()
	record.Equipment = []pf.EquipmentSelection{
		{
			Slot:        pf.SlotArmor,
			Name:        "chain_shirt",
			DisplayName: "+1 Chain Shirt",
			Equipped:    true,
			ArmorBonus:  4,
			MaxDexBonus: int32Ptr(4),
			Enhancement: 1,
		},
	}

	sheet := s.calculate(record)

	// 10 + dex 2 + armor 4 + enhancement 1
	s.Equal(int32(17), sheet.ArmorClass.Total)
	// Touch ignores both the armor and its enhancement.
	s.Equal(int32(12), sheet.TouchAC.Total)
	s.Equal(int32(15), sheet.FlatFootedAC.Total)
}

func (s *CalculatorTestSuite) TestMaxDexCapsACNotInitiative() {
	record := fighterRecord()
	record.AbilityScores[pf.AbilityDexterity] = 20
	record.Equipment = []pf.EquipmentSelection{
		{
			Slot:        pf.SlotArmor,
			Name:        "full_plate",
			Equipped:    true,
			ArmorBonus:  9,
			MaxDexBonus: int32Ptr(1),
		},
	}

	sheet := s.calculate(record)

	// 10 + capped dex 1 + armor 9
	s.Equal(int32(20), sheet.ArmorClass.Total)
	// Initiative uses the uncapped modifier.
	s.Equal(int32(5), sheet.Initiative.Total)
}

func (s *CalculatorTestSuite) TestUnequippedGearIgnored() {
	record := fighterRecord()
	record.Equipment = []pf.EquipmentSelection{
		{Slot: pf.SlotArmor, Name: "chain_shirt", Equipped: false, ArmorBonus: 4},
	}

	sheet := s.calculate(record)
	s.Equal(int32(12), sheet.ArmorClass.Total)
}

func (s *CalculatorTestSuite) TestMasterworkWeapon() {
	record := fighterRecord()
	record.Equipment = []pf.EquipmentSelection{
		{
			Slot:       pf.SlotWeapon,
			Name:       "masterwork_longsword",
			Equipped:   true,
			AttackKind: pf.AttackMelee,
			Masterwork: true,
		},
	}

	sheet := s.calculate(record)

	// BAB 1 + str 3 + masterwork 1
	s.Equal(int32(5), sheet.Attacks[pf.AttackMelee].Total)
	// Ranged attacks are untouched.
	s.Equal(int32(3), sheet.Attacks[pf.AttackRanged].Total)
}

func (s *CalculatorTestSuite) TestSkills() {
	record := fighterRecord()
	record.Skills = []pf.SkillSelection{
		{SkillID: pf.SkillClimb, RankLevels: []int32{1}},
		{SkillID: pf.SkillStealth, RankLevels: []int32{1}},
	}

	sheet := s.calculate(record)

	// Class skill with a rank: str 3 + rank 1 + class 3.
	s.Equal(int32(7), sheet.Skills[pf.SkillClimb].Total)
	// Cross-class: dex 2 + rank 1, no class bonus.
	s.Equal(int32(3), sheet.Skills[pf.SkillStealth].Total)

	// Trained-only skill with no ranks is flagged, not omitted.
	spellcraft := sheet.Skills[pf.SkillSpellcraft]
	s.Require().NotNil(spellcraft.Overrides)
	s.True(spellcraft.Overrides.TrainedOnly)

	// Untrained usable skill with no ranks carries no override.
	s.Nil(sheet.Skills[pf.SkillPerception].Overrides)

	// SkillRanks lists only skills with invested ranks, in record order.
	s.Require().Len(sheet.SkillRanks, 2)
	s.Equal(pf.SkillClimb, sheet.SkillRanks[0].SkillID)
	s.True(sheet.SkillRanks[0].ClassSkill)
	s.Equal(pf.SkillStealth, sheet.SkillRanks[1].SkillID)
	s.False(sheet.SkillRanks[1].ClassSkill)
}

func (s *CalculatorTestSuite) TestFallbackBenefitExtraction() {
	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{
			Category: pf.CategoryFeat,
			Name:     "guarded",
			Benefits: []pf.Benefit{
				{Target: pf.TargetAC, Value: 1, Type: "deflection"},
				{Target: pf.TargetInitiative, Value: 2, Type: "blessed"},
			},
		},
	}

	sheet := s.calculate(record)

	s.Equal(int32(13), sheet.ArmorClass.Total)
	// Unknown bonus type parses as untyped and still applies.
	s.Equal(int32(4), sheet.Initiative.Total)
}

func (s *CalculatorTestSuite) TestMalformedBenefitSkipped() {
	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{
			Category: pf.CategoryFeat,
			Name:     "partial",
			Benefits: []pf.Benefit{
				{Target: "", Value: 5, Type: "untyped"},
				{Target: pf.TargetInitiative, Value: 1, Type: ""},
				{Target: pf.TargetInitiative, Value: 2, Type: "untyped"},
			},
		},
	}

	sheet := s.calculate(record)

	// Only the well-formed sibling applies.
	s.Equal(int32(4), sheet.Initiative.Total)
}

func (s *CalculatorTestSuite) TestDefinitionBenefitsOverrideSelection() {
	_, err := s.features.Put(s.ctx, featurerepo.PutInput{
		Feature: &pf.Feature{
			Category: pf.CategoryFeat,
			Name:     "alertness",
			Benefits: []pf.Benefit{
				{Target: pf.SkillTarget(pf.SkillPerception), Value: 2, Type: "untyped"},
			},
		},
	})
	s.Require().NoError(err)

	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{
			Category: pf.CategoryFeat,
			Name:     "alertness",
			// Stale inline copy; the stored definition wins.
			Benefits: []pf.Benefit{
				{Target: pf.SkillTarget(pf.SkillPerception), Value: 1, Type: "untyped"},
			},
		},
	}

	sheet := s.calculate(record)
	s.Equal(int32(2), sheet.Skills[pf.SkillPerception].Total)
}

func (s *CalculatorTestSuite) TestArchetypeReplacement() {
	_, err := s.features.PutBatch(s.ctx, featurerepo.PutBatchInput{
		Features: []*pf.Feature{
			{
				Category: pf.CategoryArchetype,
				Name:     "two_handed_fighter",
				Grants:   []string{"class.overhand_chop"},
			},
			{
				Category: pf.CategoryClassFeature,
				Name:     "overhand_chop",
				Replaces: []string{"class.bravery"},
				Benefits: []pf.Benefit{
					{Target: pf.TargetAttackMelee, Value: 1, Type: "untyped"},
				},
			},
		},
	})
	s.Require().NoError(err)

	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{Category: pf.CategoryArchetype, Name: "two_handed_fighter"},
		{
			Category: pf.CategoryClassFeature,
			Name:     "bravery",
			Benefits: []pf.Benefit{
				{Target: pf.SaveTarget(pf.SaveWill), Value: 1, Type: "untyped"},
			},
		},
	}

	sheet := s.calculate(record)

	// The replaced base feature contributes nothing.
	s.Equal(int32(0), sheet.Saves[pf.SaveWill].Total)
	// The granted replacement applies.
	s.Equal(int32(5), sheet.Attacks[pf.AttackMelee].Total)

	var keys []string
	for _, f := range sheet.Features {
		keys = append(keys, f.Key)
	}
	s.NotContains(keys, "class.bravery")
	s.Contains(keys, "class.overhand_chop")

	for _, f := range sheet.Features {
		if f.Key == "class.overhand_chop" {
			s.Equal("archetype.two_handed_fighter", f.ArchetypeID)
		}
	}
}

func (s *CalculatorTestSuite) TestArchetypeAlteration() {
	_, err := s.features.PutBatch(s.ctx, featurerepo.PutBatchInput{
		Features: []*pf.Feature{
			{
				Category: pf.CategoryArchetype,
				Name:     "sharpshooter",
				Grants:   []string{"class.focused_aim"},
			},
			{
				Category: pf.CategoryClassFeature,
				Name:     "focused_aim",
				Alters:   []string{"class.weapon_training"},
			},
		},
	})
	s.Require().NoError(err)

	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{Category: pf.CategoryArchetype, Name: "sharpshooter"},
		{
			Category: pf.CategoryClassFeature,
			Name:     "weapon_training",
			Benefits: []pf.Benefit{
				{Target: pf.TargetAttack, Value: 1, Type: "untyped"},
			},
		},
	}

	sheet := s.calculate(record)

	// Altered features still apply their benefits.
	s.Equal(int32(5), sheet.Attacks[pf.AttackMelee].Total)

	var found bool
	for _, f := range sheet.Features {
		if f.Key == "class.weapon_training" {
			found = true
			s.True(f.Altered)
			s.Equal("class.focused_aim", f.AlteredBy)
		}
	}
	s.True(found, "altered feature should remain in the processed list")
}

func (s *CalculatorTestSuite) TestRageActiveState() {
	record := fighterRecord()
	record.ActiveStates = []pf.FeatureSelection{
		{Category: pf.CategoryClassFeature, Name: "Rage"},
	}

	sheet := s.calculate(record)

	// Str 16 + 4 morale = 20, modifier 5.
	s.Equal(int32(20), sheet.Abilities[pf.AbilityStrength].Total)
	s.Equal(int32(5), sheet.AbilityModifiers[pf.AbilityStrength])
	// Melee attack picks up the raised strength: BAB 1 + str 5.
	s.Equal(int32(6), sheet.Attacks[pf.AttackMelee].Total)
	// AC takes the rage penalty: 10 + dex 2 - 2.
	s.Equal(int32(10), sheet.ArmorClass.Total)
}

func (s *CalculatorTestSuite) TestEnlargePersonSizeOverride() {
	record := fighterRecord()
	record.ActiveStates = []pf.FeatureSelection{
		{Category: pf.CategorySpell, Name: "Enlarge Person"},
	}

	sheet := s.calculate(record)

	// Str 16 + 2 size = 18 (mod 4); dex 14 - 2 = 12 (mod 1).
	s.Equal(int32(4), sheet.AbilityModifiers[pf.AbilityStrength])
	s.Equal(int32(1), sheet.AbilityModifiers[pf.AbilityDexterity])
	// AC: 10 + dex 1 + size -1.
	s.Equal(int32(10), sheet.ArmorClass.Total)
	// CMB: BAB 1 + str 4 + special size +1.
	s.Equal(int32(6), sheet.CMB.Total)
}

func (s *CalculatorTestSuite) TestWeaponFinesse() {
	record := fighterRecord()
	record.AbilityScores[pf.AbilityStrength] = 10
	record.Selections = []pf.FeatureSelection{
		{Category: pf.CategoryFeat, Name: "Weapon Finesse"},
	}

	sheet := s.calculate(record)

	// Melee uses dex instead of str: BAB 1 + dex 2.
	s.Equal(int32(3), sheet.Attacks[pf.AttackMelee].Total)
}

func (s *CalculatorTestSuite) TestFavoredClassRacialAlternative() {
	record := fighterRecord()
	record.FavoredClassBonuses = []pf.FavoredClassBonus{
		{ClassID: "fighter", Level: 1, Choice: pf.FavoredHP},
		{
			ClassID: "fighter",
			Level:   2,
			Choice:  pf.FavoredOther,
			Benefits: []pf.Benefit{
				{Target: pf.SaveTarget(pf.SaveWill), Value: 1, Type: "untyped"},
			},
		},
	}

	sheet := s.calculate(record)

	// The racial alternative's declared benefit lands; the HP choice
	// writes to a target the sheet does not read and must not interfere.
	s.Equal(int32(1), sheet.Saves[pf.SaveWill].Total)
}

func (s *CalculatorTestSuite) TestMulticlassProgression() {
	record := fighterRecord()
	record.Classes = append(record.Classes, pf.ClassSelection{
		ClassID: "rogue",
		Name:    "Rogue",
		Level:   4,
		HitDie:  8,
		BAB:     pf.BABThreeQuarter,
		Saves: map[pf.SaveID]pf.SaveProgression{
			pf.SaveFortitude: pf.SavePoor,
			pf.SaveReflex:    pf.SaveGood,
			pf.SaveWill:      pf.SavePoor,
		},
		ClassSkills: []pf.SkillID{pf.SkillStealth},
	})

	sheet := s.calculate(record)

	s.Equal(int32(5), sheet.TotalLevel)
	// BAB: fighter 1 + rogue floor(4*3/4)=3.
	// Melee: BAB 4 + str 3.
	s.Equal(int32(7), sheet.Attacks[pf.AttackMelee].Total)
	// Fort: good(1)=2 + poor(4)=1, plus con 1.
	s.Equal(int32(4), sheet.Saves[pf.SaveFortitude].Total)
	// Reflex: poor(1)=0 + good(4)=4, plus dex 2.
	s.Equal(int32(6), sheet.Saves[pf.SaveReflex].Total)
}

func (s *CalculatorTestSuite) TestSavesSharedTarget() {
	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{
			Category: pf.CategoryABP,
			Name:     "resistance",
			Options:  map[string]string{"value": "2"},
		},
	}

	sheet := s.calculate(record)

	// Resistance rides the shared saves target and lands on every save.
	s.Equal(int32(5), sheet.Saves[pf.SaveFortitude].Total)
	s.Equal(int32(4), sheet.Saves[pf.SaveReflex].Total)
	s.Equal(int32(2), sheet.Saves[pf.SaveWill].Total)
}

func (s *CalculatorTestSuite) TestUnknownFeatureIsSkipped() {
	record := fighterRecord()
	record.Selections = []pf.FeatureSelection{
		{Category: pf.CategoryFeat, Name: "completely_unknown"},
	}

	// No effect, no benefits, no definition: the pass still succeeds.
	sheet := s.calculate(record)
	s.Equal(int32(12), sheet.ArmorClass.Total)
}

func (s *CalculatorTestSuite) TestInputValidation() {
	_, err := s.adapter.CalculateCharacterSheet(s.ctx, nil)
	s.Error(err)

	_, err = s.adapter.CalculateCharacterSheet(s.ctx, &engine.CalculateCharacterSheetInput{})
	s.Error(err)

	_, err = s.adapter.CalculateCharacterSheet(s.ctx, &engine.CalculateCharacterSheetInput{
		Record: &pf.CharacterRecord{},
	})
	s.Error(err)
}

func (s *CalculatorTestSuite) TestMissingFeatureRepoRejected() {
	_, err := pfcalc.NewAdapter(&pfcalc.AdapterConfig{})
	s.Error(err)
}

func int32Ptr(v int32) *int32 {
	return &v
}

func TestCalculatorTestSuite(t *testing.T) {
	suite.Run(t, new(CalculatorTestSuite))
}
