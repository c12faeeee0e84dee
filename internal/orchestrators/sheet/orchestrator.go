// Package sheet implements the character and sheet orchestrator
package sheet

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/dice"

	"github.com/herosheet/sheet-api/internal/engine"
	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	"github.com/herosheet/sheet-api/internal/pkg/clock"
	"github.com/herosheet/sheet-api/internal/pkg/idgen"
	characterrepo "github.com/herosheet/sheet-api/internal/repositories/character"
	"github.com/herosheet/sheet-api/internal/repositories/sheetcache"
	sheetsvc "github.com/herosheet/sheet-api/internal/services/sheet"
)

// Config holds the dependencies for the sheet orchestrator
type Config struct {
	CharacterRepo characterrepo.Repository
	SheetCache    sheetcache.Repository
	Engine        engine.Engine
	Clock         clock.Clock
	IDGenerator   idgen.Generator
	Logger        *slog.Logger
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.CharacterRepo == nil {
		vb.RequiredField("CharacterRepo")
	}
	if c.SheetCache == nil {
		vb.RequiredField("SheetCache")
	}
	if c.Engine == nil {
		vb.RequiredField("Engine")
	}

	return vb.Build()
}

// Orchestrator implements the sheet.Service interface
type Orchestrator struct {
	characterRepo characterrepo.Repository
	sheetCache    sheetcache.Repository
	engine        engine.Engine
	clock         clock.Clock
	idGen         idgen.Generator
	logger        *slog.Logger
}

// New creates a new sheet orchestrator
func New(cfg *Config) (*Orchestrator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}
	gen := cfg.IDGenerator
	if gen == nil {
		gen = idgen.NewUUID("char")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Orchestrator{
		characterRepo: cfg.CharacterRepo,
		sheetCache:    cfg.SheetCache,
		engine:        cfg.Engine,
		clock:         c,
		idGen:         gen,
		logger:        logger,
	}, nil
}

// Ensure Orchestrator implements the Service interface
var _ sheetsvc.Service = (*Orchestrator)(nil)

// CreateCharacter stores a new character record
func (o *Orchestrator) CreateCharacter(
	ctx context.Context,
	input *sheetsvc.CreateCharacterInput,
) (*sheetsvc.CreateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	if input.Record == nil {
		vb.RequiredField("record")
	} else {
		errors.ValidateRequired("record.name", input.Record.Name, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	record := input.Record
	record.PlayerID = input.PlayerID
	if record.ID == "" {
		record.ID = o.idGen.Generate()
	}

	out, err := o.characterRepo.Create(ctx, characterrepo.CreateInput{Record: record})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create character")
	}

	return &sheetsvc.CreateCharacterOutput{Record: out.Record}, nil
}

// GetCharacter retrieves a character record
func (o *Orchestrator) GetCharacter(
	ctx context.Context,
	input *sheetsvc.GetCharacterInput,
) (*sheetsvc.GetCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	return &sheetsvc.GetCharacterOutput{Record: out.Record}, nil
}

// UpdateCharacter stores an updated record and drops the cached sheet
func (o *Orchestrator) UpdateCharacter(
	ctx context.Context,
	input *sheetsvc.UpdateCharacterInput,
) (*sheetsvc.UpdateCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	if input.Record == nil {
		vb.RequiredField("record")
	} else {
		errors.ValidateRequired("record.id", input.Record.ID, vb)
	}
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.Update(ctx, characterrepo.UpdateInput{Record: input.Record})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update character")
	}

	o.invalidateSheet(ctx, out.Record.ID)

	return &sheetsvc.UpdateCharacterOutput{Record: out.Record}, nil
}

// DeleteCharacter removes a record and its cached sheet
func (o *Orchestrator) DeleteCharacter(
	ctx context.Context,
	input *sheetsvc.DeleteCharacterInput,
) (*sheetsvc.DeleteCharacterOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	if _, err := o.characterRepo.Delete(ctx, characterrepo.DeleteInput{ID: input.CharacterID}); err != nil {
		return nil, err
	}

	o.invalidateSheet(ctx, input.CharacterID)

	return &sheetsvc.DeleteCharacterOutput{}, nil
}

// ListCharacters lists a player's character records
func (o *Orchestrator) ListCharacters(
	ctx context.Context,
	input *sheetsvc.ListCharactersInput,
) (*sheetsvc.ListCharactersOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("playerID", input.PlayerID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	out, err := o.characterRepo.ListByPlayerID(ctx, characterrepo.ListByPlayerIDInput{
		PlayerID: input.PlayerID,
	})
	if err != nil {
		return nil, err
	}

	return &sheetsvc.ListCharactersOutput{Records: out.Records}, nil
}

// GetSheet returns the derived sheet, serving from cache when the cached
// entry matches the record's update timestamp and recomputing otherwise
func (o *Orchestrator) GetSheet(
	ctx context.Context,
	input *sheetsvc.GetSheetInput,
) (*sheetsvc.GetSheetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	recordOut, err := o.characterRepo.Get(ctx, characterrepo.GetInput{ID: input.CharacterID})
	if err != nil {
		return nil, err
	}
	record := recordOut.Record

	cached, err := o.sheetCache.Get(ctx, sheetcache.GetInput{CharacterID: input.CharacterID})
	if err == nil && cached.RecordUpdatedAt == record.UpdatedAt {
		return &sheetsvc.GetSheetOutput{Sheet: cached.Sheet, FromCache: true}, nil
	}
	if err != nil && !errors.IsNotFound(err) {
		// Cache trouble degrades to recomputation.
		o.logger.Warn("sheet cache lookup failed",
			"character_id", input.CharacterID,
			"error", err,
		)
	}

	sheet, err := o.computeSheet(ctx, record)
	if err != nil {
		return nil, err
	}

	return &sheetsvc.GetSheetOutput{Sheet: sheet, FromCache: false}, nil
}

// RollCheck rolls a d20 against one of the sheet's resolved values
func (o *Orchestrator) RollCheck(
	ctx context.Context,
	input *sheetsvc.RollCheckInput,
) (*sheetsvc.RollCheckOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}

	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("characterID", input.CharacterID, vb)
	errors.ValidateRequired("target", input.Target, vb)
	if err := vb.Build(); err != nil {
		return nil, err
	}

	sheetOut, err := o.GetSheet(ctx, &sheetsvc.GetSheetInput{CharacterID: input.CharacterID})
	if err != nil {
		return nil, err
	}

	breakdown, err := checkBreakdown(sheetOut.Sheet, input.Target)
	if err != nil {
		return nil, err
	}

	roll, err := dice.NewRoll(1, 20)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to roll check")
	}

	rolled := int32(roll.GetValue())
	return &sheetsvc.RollCheckOutput{
		Roll:        rolled,
		Modifier:    breakdown.Total,
		Total:       rolled + breakdown.Total,
		Description: roll.GetDescription(),
		Breakdown:   breakdown,
	}, nil
}

// checkBreakdown finds the rollable sheet value behind a check target key
func checkBreakdown(sheet *pf.CharacterSheet, target string) (pf.ValueWithBreakdown, error) {
	switch target {
	case pf.TargetInitiative:
		return sheet.Initiative, nil
	case pf.TargetCMB:
		return sheet.CMB, nil
	case pf.TargetAttackMelee:
		return sheet.Attacks[pf.AttackMelee], nil
	case pf.TargetAttackRange:
		return sheet.Attacks[pf.AttackRanged], nil
	case pf.TargetAttackBomb:
		return sheet.Attacks[pf.AttackBomb], nil
	}

	for _, id := range pf.Saves {
		if target == pf.SaveTarget(id) {
			return sheet.Saves[id], nil
		}
	}
	for id := range sheet.Skills {
		if target == pf.SkillTarget(id) || target == string(id) {
			return sheet.Skills[id], nil
		}
	}

	return pf.ValueWithBreakdown{}, errors.InvalidArgumentf("target %q is not rollable", target)
}

// computeSheet runs the engine and refreshes the cache. Cache write
// failures are logged, not surfaced; the sheet is already in hand.
func (o *Orchestrator) computeSheet(ctx context.Context, record *pf.CharacterRecord) (*pf.CharacterSheet, error) {
	out, err := o.engine.CalculateCharacterSheet(ctx, &engine.CalculateCharacterSheetInput{
		Record: record,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to calculate sheet for character %s", record.ID)
	}

	if _, err := o.sheetCache.Put(ctx, sheetcache.PutInput{
		Sheet:           out.Sheet,
		RecordUpdatedAt: record.UpdatedAt,
	}); err != nil {
		o.logger.Warn("failed to cache computed sheet",
			"character_id", record.ID,
			"error", err,
		)
	}

	return out.Sheet, nil
}

// invalidateSheet drops the cached sheet, logging on failure
func (o *Orchestrator) invalidateSheet(ctx context.Context, characterID string) {
	if _, err := o.sheetCache.Invalidate(ctx, sheetcache.InvalidateInput{
		CharacterID: characterID,
	}); err != nil {
		o.logger.Warn("failed to invalidate cached sheet",
			"character_id", characterID,
			"error", err,
		)
	}
}
