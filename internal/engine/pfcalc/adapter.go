// Package pfcalc implements the rules engine: feature resolution, bonus
// stacking, and explained sheet assembly
package pfcalc

import (
	"context"
	"log/slog"

	"github.com/herosheet/sheet-api/internal/engine"
	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	featurerepo "github.com/herosheet/sheet-api/internal/repositories/feature"
)

// AdapterConfig holds the adapter's dependencies
type AdapterConfig struct {
	FeatureRepo featurerepo.Repository
	Logger      *slog.Logger
}

// Validate ensures required dependencies are present
func (c *AdapterConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.FeatureRepo == nil {
		return errors.InvalidArgument("feature repository is required")
	}
	return nil
}

// Adapter implements engine.Engine on the feature-resolution pipeline
type Adapter struct {
	features featurerepo.Repository
	registry *Registry
	logger   *slog.Logger
}

// Ensure the adapter satisfies the engine boundary
var _ engine.Engine = (*Adapter)(nil)

// NewAdapter creates a calculation engine with the builtin effects
// registered
func NewAdapter(cfg *AdapterConfig) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := NewRegistry()
	registerBuiltins(registry)

	return &Adapter{
		features: cfg.FeatureRepo,
		registry: registry,
		logger:   logger,
	}, nil
}

// RegisterEffect installs an additional effect implementation. Intended
// for content modules layered on top of the builtins.
func (a *Adapter) RegisterEffect(eff Effect) {
	a.registry.Register(eff)
}

// CalculateCharacterSheet runs the pipeline over a fresh entity and ledger
// and assembles the explained sheet. Nothing is cached here; staleness is
// the caller's concern.
func (a *Adapter) CalculateCharacterSheet(
	ctx context.Context,
	input *engine.CalculateCharacterSheetInput,
) (*engine.CalculateCharacterSheetOutput, error) {
	if input == nil || input.Record == nil {
		return nil, errors.InvalidArgument("character record is required")
	}
	if input.Record.ID == "" {
		return nil, errors.InvalidArgument("character record ID is required")
	}

	e := NewEntity(input.Record)
	ledger := NewLedger()
	abilities := &AbilityResolver{ledger: ledger}
	skills := &SkillResolver{ledger: ledger, abilities: abilities}
	combat := &CombatResolver{ledger: ledger, abilities: abilities}

	p := &pipeline{
		features:  a.features,
		registry:  a.registry,
		ledger:    ledger,
		abilities: abilities,
		skills:    skills,
		combat:    combat,
		logger:    a.logger,
	}

	if err := p.initializeFeatures(ctx, e); err != nil {
		return nil, errors.Wrap(err, "failed to initialize features")
	}

	sheet := &pf.CharacterSheet{
		CharacterID: input.Record.ID,
		Name:        input.Record.Name,
		TotalLevel:  input.Record.TotalLevel(),

		Abilities:        make(map[pf.Ability]pf.ValueWithBreakdown, 6),
		AbilityModifiers: make(map[pf.Ability]int32, 6),
		Saves:            make(map[pf.SaveID]pf.ValueWithBreakdown, 3),
		Attacks:          make(map[pf.AttackKind]pf.ValueWithBreakdown, 3),
		Skills:           make(map[pf.SkillID]pf.ValueWithBreakdown, len(pf.SkillTable)),
	}

	for _, ability := range []pf.Ability{
		pf.AbilityStrength,
		pf.AbilityDexterity,
		pf.AbilityConstitution,
		pf.AbilityIntelligence,
		pf.AbilityWisdom,
		pf.AbilityCharisma,
	} {
		sheet.Abilities[ability] = abilities.Breakdown(e, ability)
		sheet.AbilityModifiers[ability] = abilities.Modifier(e, ability)
	}

	for _, save := range []pf.SaveID{pf.SaveFortitude, pf.SaveReflex, pf.SaveWill} {
		sheet.Saves[save] = combat.SaveBreakdown(e, save)
	}

	sheet.ArmorClass = combat.ACBreakdown(e)
	sheet.TouchAC = combat.TouchACBreakdown(e)
	sheet.FlatFootedAC = combat.FlatFootedACBreakdown(e)
	sheet.Initiative = combat.InitiativeBreakdown(e)
	sheet.CMB = combat.CMBBreakdown(e)
	sheet.CMD = combat.CMDBreakdown(e)

	for _, kind := range []pf.AttackKind{pf.AttackMelee, pf.AttackRanged, pf.AttackBomb} {
		sheet.Attacks[kind] = combat.AttackBreakdown(e, kind)
	}

	for id := range pf.SkillTable {
		sheet.Skills[id] = skills.Breakdown(e, id)
	}

	for _, s := range input.Record.Skills {
		if s.Ranks() == 0 {
			continue
		}
		name := string(s.SkillID)
		if info, ok := pf.SkillTable[s.SkillID]; ok {
			name = info.Name
		}
		sheet.SkillRanks = append(sheet.SkillRanks, pf.SkillRanks{
			SkillID:    s.SkillID,
			Name:       name,
			ClassSkill: skills.IsClassSkill(e, s.SkillID),
			RankLevels: append([]int32(nil), s.RankLevels...),
		})
	}

	sheet.Features = e.processedFeatures()

	return &engine.CalculateCharacterSheetOutput{Sheet: sheet}, nil
}

// CalculateAbilityModifier exposes the modifier formula to callers outside
// a calculation pass
func (a *Adapter) CalculateAbilityModifier(score int32) int32 {
	return AbilityModifier(score)
}
