package pfcalc

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// Entity property keys. Effects and the pipeline stash derived facts here;
// everything is discarded with the entity at the end of the pass.
const (
	propClassSkills   = "class_skills"
	propReplaced      = "replaced_features"
	propAltered       = "altered_features"
	propMaxDex        = "max_dex_bonus"
	propFinesse       = "weapon_finesse"
	propSizeOverrides = "size_overrides"
	propKnownSpells   = "known_spells"
	propProcessed     = "processed_features"
)

// Entity is the in-memory computation scope for one character during one
// calculation pass. It holds a mutable bag of keyed properties alongside a
// reference to the immutable raw record, and is discarded once the sheet
// is assembled.
type Entity struct {
	id     string
	record *pf.CharacterRecord
	props  map[string]any
}

// NewEntity creates the working entity for one calculation pass
func NewEntity(record *pf.CharacterRecord) *Entity {
	return &Entity{
		id:     record.ID,
		record: record,
		props:  make(map[string]any),
	}
}

// Ensure Entity satisfies the toolkit entity interface
var _ core.Entity = (*Entity)(nil)

// GetID returns the entity's ID
func (e *Entity) GetID() string {
	return e.id
}

// GetType returns the entity type
func (e *Entity) GetType() string {
	return "character"
}

// Record returns the immutable raw character record
func (e *Entity) Record() *pf.CharacterRecord {
	return e.record
}

// Set stores a keyed property on the entity
func (e *Entity) Set(key string, value any) {
	e.props[key] = value
}

// Get returns a keyed property
func (e *Entity) Get(key string) (any, bool) {
	v, ok := e.props[key]
	return v, ok
}

// sizeOverride is one effective-size contribution. Highest priority wins;
// equal priorities resolve to the most recently applied (highest order).
type sizeOverride struct {
	size     pf.SizeCategory
	priority int32
	order    int
}

// SetSizeOverride records an effective-size contribution
func (e *Entity) SetSizeOverride(size pf.SizeCategory, priority int32) {
	overrides, _ := e.props[propSizeOverrides].([]sizeOverride)
	overrides = append(overrides, sizeOverride{
		size:     size,
		priority: priority,
		order:    len(overrides),
	})
	e.props[propSizeOverrides] = overrides
}

// EffectiveSize returns the size after overrides, or the record's base size
func (e *Entity) EffectiveSize() pf.SizeCategory {
	overrides, _ := e.props[propSizeOverrides].([]sizeOverride)
	size := e.record.BaseSize
	best := sizeOverride{priority: -1, order: -1}
	for _, o := range overrides {
		// >= on both: most-recently-applied wins equal priorities
		if o.priority > best.priority || (o.priority == best.priority && o.order >= best.order) {
			best = o
			size = o.size
		}
	}
	return size
}

// CapMaxDex lowers the entity's maximum dexterity bonus to AC. Armor
// records this as side data: it caps a formula input downstream rather
// than being itself a bonus.
func (e *Entity) CapMaxDex(maxDex int32) {
	if current, ok := e.props[propMaxDex].(int32); ok && current <= maxDex {
		return
	}
	e.props[propMaxDex] = maxDex
}

// MaxDex returns the max-dex cap, if any armor imposed one
func (e *Entity) MaxDex() (int32, bool) {
	v, ok := e.props[propMaxDex].(int32)
	return v, ok
}

// SetFinesse marks melee attacks as dexterity-based
func (e *Entity) SetFinesse() {
	e.props[propFinesse] = true
}

// Finesse reports whether melee attacks use dexterity
func (e *Entity) Finesse() bool {
	v, _ := e.props[propFinesse].(bool)
	return v
}

// AddKnownSpell registers a known spell key
func (e *Entity) AddKnownSpell(key string) {
	spells, _ := e.props[propKnownSpells].([]string)
	e.props[propKnownSpells] = append(spells, key)
}

// KnownSpells returns the registered known spell keys
func (e *Entity) KnownSpells() []string {
	spells, _ := e.props[propKnownSpells].([]string)
	return spells
}

// addProcessed appends to the processed-feature list in application order
func (e *Entity) addProcessed(f pf.ProcessedFeature) {
	features, _ := e.props[propProcessed].([]pf.ProcessedFeature)
	e.props[propProcessed] = append(features, f)
}

// processedFeatures returns the features applied so far
func (e *Entity) processedFeatures() []pf.ProcessedFeature {
	features, _ := e.props[propProcessed].([]pf.ProcessedFeature)
	return features
}
