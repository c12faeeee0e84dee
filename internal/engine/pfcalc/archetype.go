package pfcalc

// Replacement records that an archetype feature fully replaces a base
// class feature: the base feature is skipped entirely, no effect
// invocation and no fallback extraction.
type Replacement struct {
	ReplacedBy  string
	ArchetypeID string
}

// Alteration records that an archetype feature alters a base class
// feature: the base feature still applies, with the altered flag passed
// into its effect invocation.
type Alteration struct {
	AlteredBy   string
	ArchetypeID string
}

// replacedFeatures returns the entity-scoped replacement record, creating
// it on first use. Built during archetype processing, read-only afterward.
func replacedFeatures(e *Entity) map[string]Replacement {
	m, ok := e.props[propReplaced].(map[string]Replacement)
	if !ok {
		m = make(map[string]Replacement)
		e.props[propReplaced] = m
	}
	return m
}

// alteredFeatures returns the entity-scoped alteration record
func alteredFeatures(e *Entity) map[string]Alteration {
	m, ok := e.props[propAltered].(map[string]Alteration)
	if !ok {
		m = make(map[string]Alteration)
		e.props[propAltered] = m
	}
	return m
}

// markReplaced records that baseKey is replaced by an archetype feature
func markReplaced(e *Entity, baseKey, replacedBy, archetypeID string) {
	replacedFeatures(e)[baseKey] = Replacement{
		ReplacedBy:  replacedBy,
		ArchetypeID: archetypeID,
	}
}

// markAltered records that baseKey is altered by an archetype feature
func markAltered(e *Entity, baseKey, alteredBy, archetypeID string) {
	alteredFeatures(e)[baseKey] = Alteration{
		AlteredBy:   alteredBy,
		ArchetypeID: archetypeID,
	}
}

// replacementFor looks up a replacement for a base feature key
func replacementFor(e *Entity, key string) (Replacement, bool) {
	r, ok := replacedFeatures(e)[key]
	return r, ok
}

// alterationFor looks up an alteration for a base feature key
func alterationFor(e *Entity, key string) (Alteration, bool) {
	a, ok := alteredFeatures(e)[key]
	return a, ok
}
