package pfcalc

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
	featurerepo "github.com/herosheet/sheet-api/internal/repositories/feature"
)

// pipeline walks the character's selected features in the fixed category
// order and populates the ledger and entity side data. Per-feature
// failures are logged and skipped; only malformed input aborts the pass.
type pipeline struct {
	features  featurerepo.Repository
	registry  *Registry
	ledger    *Ledger
	abilities *AbilityResolver
	skills    *SkillResolver
	combat    *CombatResolver
	logger    *slog.Logger
}

// initializeFeatures applies every non-empty category in order. Archetype
// processing must populate the replacement record before class features
// consult it, so the phase order is load-bearing.
func (p *pipeline) initializeFeatures(ctx context.Context, e *Entity) error {
	buildClassSkillSet(e)

	p.applyCategory(ctx, e, pf.CategoryABP)
	p.applyFavoredClass(e)
	p.applyCategory(ctx, e, pf.CategoryTrait)
	p.applyArchetypes(ctx, e)
	p.applyClassFeatures(ctx, e)
	p.applyCategory(ctx, e, pf.CategoryDiscovery)
	p.applyCategory(ctx, e, pf.CategoryTalent)
	p.applyCategory(ctx, e, pf.CategoryKiPower)
	p.applyCategory(ctx, e, pf.CategoryBloodline)
	p.applyCategory(ctx, e, pf.CategoryFeat)
	p.applyEquipment(e)
	p.applyCategory(ctx, e, pf.CategoryCorruption)
	p.registerKnownSpells(e)
	p.applyActiveStates(ctx, e)

	return nil
}

// applyCategory resolves every selection in one category
func (p *pipeline) applyCategory(ctx context.Context, e *Entity, cat pf.FeatureCategory) {
	for _, sel := range e.Record().SelectionsByCategory(cat) {
		s := sel
		p.applySelection(ctx, e, &s, false, "")
		p.recordProcessed(e, &s, false, "", "")
	}
}

// applySelection runs the per-feature resolution algorithm: resolve an
// executable effect for the feature's identifier, invoke it if applicable,
// and otherwise fall back to direct benefit extraction. The fallback is
// the designed path for the majority of content, not an error path.
func (p *pipeline) applySelection(ctx context.Context, e *Entity, sel *pf.FeatureSelection, altered bool, alteredBy string) {
	key := sel.Key()

	fallback := sel.Benefits
	if def := p.lookup(ctx, e, sel.Category, sel.Name); def != nil && len(def.Benefits) > 0 {
		fallback = def.Benefits
	}

	res := p.registry.Resolve(key, e, fallback)
	switch res.Kind {
	case ResolutionFound:
		if err := p.invoke(ctx, e, sel, res.Effect, altered, alteredBy); err != nil {
			p.logger.Warn("feature effect failed, extracting benefits",
				"feature_id", key,
				"entity_id", e.GetID(),
				"error", err,
			)
			p.extractBenefits(e, sel.Label(), fallback)
		}

	case ResolutionFallback:
		p.extractBenefits(e, sel.Label(), res.Benefits)

	case ResolutionUnhandled:
		p.logger.Warn("feature has no effect implementation and no benefits",
			"feature_id", key,
			"entity_id", e.GetID(),
		)
	}
}

// invoke runs an effect with a panic boundary so a broken implementation
// degrades to the fallback path instead of aborting the pass
func (p *pipeline) invoke(ctx context.Context, e *Entity, sel *pf.FeatureSelection, eff Effect, altered bool, alteredBy string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Internalf("effect panicked: %v", r)
		}
	}()

	return eff.Apply(ctx, &Invocation{
		Entity:    e,
		Selection: sel,
		Ledger:    p.ledger,
		Abilities: p.abilities,
		Skills:    p.skills,
		Combat:    p.combat,
		Altered:   altered,
		AlteredBy: alteredBy,
	})
}

// lookup fetches the stored feature definition, tolerating absence
func (p *pipeline) lookup(ctx context.Context, e *Entity, cat pf.FeatureCategory, name string) *pf.Feature {
	out, err := p.features.Get(ctx, featurerepo.GetInput{Category: cat, Name: name})
	if err != nil {
		if !errors.IsNotFound(err) {
			p.logger.Warn("feature definition lookup failed",
				"feature_id", pf.FeatureKey(cat, name),
				"entity_id", e.GetID(),
				"error", err,
			)
		}
		return nil
	}
	return out.Feature
}

// extractBenefits contributes a feature's declared flat bonuses directly
// to the ledger. A benefit missing its target or bonus type is skipped;
// sibling benefits still apply.
func (p *pipeline) extractBenefits(e *Entity, source string, benefits []pf.Benefit) {
	for _, b := range benefits {
		if b.Target == "" || b.Type == "" {
			p.logger.Warn("skipping malformed benefit",
				"source", source,
				"entity_id", e.GetID(),
			)
			continue
		}
		p.ledger.AddBonus(e, b.Target, b.Value, pf.ParseBonusType(b.Type), source)
	}
}

// applyArchetypes processes archetype selections: record the replacement
// and alteration relationships each granted feature declares, then apply
// the granted features themselves
func (p *pipeline) applyArchetypes(ctx context.Context, e *Entity) {
	for _, sel := range e.Record().SelectionsByCategory(pf.CategoryArchetype) {
		s := sel
		archetypeID := s.Key()

		def := p.lookup(ctx, e, s.Category, s.Name)

		// Archetype rows are containers for grants; their own benefits
		// apply by direct extraction. An archetype that only grants
		// features contributes nothing here.
		benefits := s.Benefits
		if def != nil && len(def.Benefits) > 0 {
			benefits = def.Benefits
		}
		p.extractBenefits(e, s.Label(), benefits)
		p.recordProcessed(e, &s, false, "", "")

		if def == nil {
			continue
		}

		for _, grantKey := range def.Grants {
			grantCat, grantName, err := splitFeatureKey(grantKey)
			if err != nil {
				p.logger.Warn("archetype grants malformed feature key",
					"feature_id", archetypeID,
					"grant", grantKey,
					"entity_id", e.GetID(),
				)
				continue
			}

			granted := p.lookup(ctx, e, grantCat, grantName)
			if granted == nil {
				p.logger.Warn("archetype grants unknown feature",
					"feature_id", archetypeID,
					"grant", grantKey,
					"entity_id", e.GetID(),
				)
				continue
			}

			for _, baseKey := range granted.Replaces {
				markReplaced(e, baseKey, granted.Key(), archetypeID)
			}
			for _, baseKey := range granted.Alters {
				markAltered(e, baseKey, granted.Key(), archetypeID)
			}

			grantedSel := &pf.FeatureSelection{
				Category:    granted.Category,
				Name:        granted.Name,
				DisplayName: granted.DisplayName,
				ClassID:     s.ClassID,
				Benefits:    granted.Benefits,
			}
			p.applySelection(ctx, e, grantedSel, false, "")
			p.recordProcessed(e, grantedSel, false, "", archetypeID)
		}
	}
}

// applyClassFeatures processes base class features, honoring the
// replacement and alteration records archetype processing populated.
// Replaced features are skipped entirely: no effect invocation, no
// fallback extraction, no processed-feature entry.
func (p *pipeline) applyClassFeatures(ctx context.Context, e *Entity) {
	for _, sel := range e.Record().SelectionsByCategory(pf.CategoryClassFeature) {
		s := sel
		key := s.Key()

		if _, replaced := replacementFor(e, key); replaced {
			continue
		}

		altered, isAltered := alterationFor(e, key)
		if isAltered {
			p.applySelection(ctx, e, &s, true, altered.AlteredBy)
			p.recordProcessed(e, &s, true, altered.AlteredBy, "")
			continue
		}

		p.applySelection(ctx, e, &s, false, "")
		p.recordProcessed(e, &s, false, "", "")
	}
}

// applyFavoredClass contributes favored-class-bonus rows
func (p *pipeline) applyFavoredClass(e *Entity) {
	for _, fcb := range e.Record().FavoredClassBonuses {
		source := fmt.Sprintf("Favored class (%s)", fcb.ClassID)
		switch fcb.Choice {
		case pf.FavoredHP:
			p.ledger.AddBonus(e, pf.TargetHP, 1, pf.BonusUntyped, source)
		case pf.FavoredSkill:
			p.ledger.AddBonus(e, pf.TargetSkillPoints, 1, pf.BonusUntyped, source)
		case pf.FavoredOther:
			p.extractBenefits(e, source, fcb.Benefits)
		}
	}
}

// registerKnownSpells stashes known-spell keys as entity side data. Spell
// rows carry no passive bonuses; slot math lives outside this engine.
func (p *pipeline) registerKnownSpells(e *Entity) {
	for _, sel := range e.Record().SelectionsByCategory(pf.CategorySpell) {
		s := sel
		e.AddKnownSpell(s.Key())
		p.recordProcessed(e, &s, false, "", "")
	}
}

// applyActiveStates applies stateful features currently toggled on
func (p *pipeline) applyActiveStates(ctx context.Context, e *Entity) {
	for _, sel := range e.Record().ActiveStates {
		s := sel
		p.applySelection(ctx, e, &s, false, "")
		p.recordProcessed(e, &s, false, "", "")
	}
}

// recordProcessed appends to the entity's processed-feature list
func (p *pipeline) recordProcessed(e *Entity, sel *pf.FeatureSelection, altered bool, alteredBy, archetypeID string) {
	e.addProcessed(pf.ProcessedFeature{
		Key:         sel.Key(),
		DisplayName: sel.Label(),
		Category:    sel.Category,
		Altered:     altered,
		AlteredBy:   alteredBy,
		ArchetypeID: archetypeID,
	})
}

// splitFeatureKey splits "category.name" into its parts
func splitFeatureKey(key string) (pf.FeatureCategory, string, error) {
	idx := strings.Index(key, ".")
	if idx <= 0 || idx == len(key)-1 {
		return "", "", errors.InvalidArgumentf("malformed feature key %q", key)
	}
	return pf.FeatureCategory(key[:idx]), key[idx+1:], nil
}
