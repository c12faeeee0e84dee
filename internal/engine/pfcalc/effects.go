package pfcalc

import (
	"context"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// Effect is a bespoke feature implementation. An effect is solely
// responsible for any ledger contributions and entity side-data mutation
// it wants to make.
type Effect interface {
	// Key returns the feature identifier this effect implements
	Key() string

	// Applicable reports whether the effect can run for this entity.
	// Non-applicable effects fall through to benefit extraction.
	Applicable(e *Entity) bool

	// Apply runs the effect
	Apply(ctx context.Context, inv *Invocation) error
}

// Invocation carries everything an effect may touch: the entity, the
// originating selection row, and the resolver handles.
type Invocation struct {
	Entity    *Entity
	Selection *pf.FeatureSelection
	Ledger    *Ledger
	Abilities *AbilityResolver
	Skills    *SkillResolver
	Combat    *CombatResolver

	// Altered is set when an archetype altered this feature; the effect
	// may branch on it.
	Altered   bool
	AlteredBy string
}

// ResolutionKind tags the outcome of effect lookup
type ResolutionKind int

// Resolution kinds
const (
	// ResolutionFound means a registered, applicable effect exists
	ResolutionFound ResolutionKind = iota
	// ResolutionFallback means no effect applies but declared benefit
	// bonuses exist for direct extraction
	ResolutionFallback
	// ResolutionUnhandled means neither an effect nor benefits exist
	ResolutionUnhandled
)

// Resolution is the explicit result of the three-tier effect lookup. The
// pipeline branches on Kind instead of treating lookup misses as errors.
type Resolution struct {
	Kind     ResolutionKind
	Effect   Effect
	Benefits []pf.Benefit
}

// Registry holds effect implementations keyed by feature identifier
type Registry struct {
	effects map[string]Effect
}

// NewRegistry creates an empty effect registry
func NewRegistry() *Registry {
	return &Registry{
		effects: make(map[string]Effect),
	}
}

// Register adds an effect implementation, overwriting any previous one for
// the same key
func (r *Registry) Register(eff Effect) {
	r.effects[eff.Key()] = eff
}

// Resolve performs the three-tier lookup for a feature key: a registered
// applicable effect, then the declared fallback benefits, then unhandled.
func (r *Registry) Resolve(key string, e *Entity, fallback []pf.Benefit) Resolution {
	if eff, ok := r.effects[key]; ok && eff.Applicable(e) {
		return Resolution{Kind: ResolutionFound, Effect: eff}
	}
	if len(fallback) > 0 {
		return Resolution{Kind: ResolutionFallback, Benefits: fallback}
	}
	return Resolution{Kind: ResolutionUnhandled}
}

// effectFunc adapts plain functions into Effects
type effectFunc struct {
	key        string
	applicable func(e *Entity) bool
	apply      func(ctx context.Context, inv *Invocation) error
}

func (f *effectFunc) Key() string {
	return f.key
}

func (f *effectFunc) Applicable(e *Entity) bool {
	if f.applicable == nil {
		return true
	}
	return f.applicable(e)
}

func (f *effectFunc) Apply(ctx context.Context, inv *Invocation) error {
	return f.apply(ctx, inv)
}
