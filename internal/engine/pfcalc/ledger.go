package pfcalc

import (
	"sync"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// BonusEntry is a single contribution to a target stat
type BonusEntry struct {
	Source string
	Type   pf.BonusType
	Value  int32
}

type rowKey struct {
	entityID string
	target   string
}

// Ledger stores contributed bonus entries per (entity, target) pair and
// computes stacking totals. Rows are insertion-ordered slices so stacking
// tie-breaks are reproducible. Mutations are serialized; a calculation
// pass is logically sequential but the lock keeps any within-category
// parallelism safe.
type Ledger struct {
	mu   sync.Mutex
	rows map[rowKey][]BonusEntry
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		rows: make(map[rowKey][]BonusEntry),
	}
}

// AddBonus appends a bonus entry to the row for (entity, target). Never
// fails: unknown targets simply start a new row.
func (l *Ledger) AddBonus(e *Entity, target string, value int32, btype pf.BonusType, source string) {
	key := rowKey{entityID: e.GetID(), target: target}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.rows[key] = append(l.rows[key], BonusEntry{
		Source: source,
		Type:   btype,
		Value:  value,
	})
}

// entries returns the merged rows for the given targets in insertion
// order, target by target
func (l *Ledger) entries(e *Entity, targets ...string) []BonusEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []BonusEntry
	for _, t := range targets {
		out = append(out, l.rows[rowKey{entityID: e.GetID(), target: t}]...)
	}
	return out
}

// Breakdown computes the stacking result for one target. The base value
// is 10 for AC-like targets and 0 otherwise; a target with no entries
// returns that base and an empty modifier list.
func (l *Ledger) Breakdown(e *Entity, target string) pf.ValueWithBreakdown {
	return l.compose(e, composeSpec{
		label:   target,
		base:    baseValueFor(target),
		targets: []string{target},
	})
}

// baseValueFor returns the implicit base value of a target stat
func baseValueFor(target string) int32 {
	switch target {
	case pf.TargetAC, pf.TargetCMD:
		return 10
	default:
		return 0
	}
}

// composeSpec describes one breakdown computation. Synthetic modifiers are
// formula-derived components (ability modifier, BAB, size step) that are
// always counted and never participate in stacking. Filter, when set,
// drops ledger entries before stacking (AC variants).
type composeSpec struct {
	label     string
	base      int32
	synthetic []pf.Modifier
	targets   []string
	filter    func(BonusEntry) bool
	overrides *pf.Overrides
}

// compose runs the stacking algorithm: partition ledger entries by bonus
// type; always-stacking types and penalties sum every entry, every other
// type keeps only the single highest entry with ties broken by first-seen
// insertion order. Dropped duplicates do not appear in the breakdown.
func (l *Ledger) compose(e *Entity, spec composeSpec) pf.ValueWithBreakdown {
	all := l.entries(e, spec.targets...)

	entries := all[:0:0]
	for _, entry := range all {
		if spec.filter != nil && !spec.filter(entry) {
			continue
		}
		entries = append(entries, entry)
	}

	// For each non-stacking type, find the index of the winning entry.
	winners := make(map[pf.BonusType]int)
	for i, entry := range entries {
		if entry.Type.Stacks() {
			continue
		}
		best, seen := winners[entry.Type]
		if !seen || entry.Value > entries[best].Value {
			winners[entry.Type] = i
		}
	}

	total := spec.base
	modifiers := make([]pf.Modifier, 0, len(spec.synthetic)+len(entries))

	for _, m := range spec.synthetic {
		total += m.Value
		modifiers = append(modifiers, m)
	}

	for i, entry := range entries {
		if !entry.Type.Stacks() && winners[entry.Type] != i {
			continue
		}
		total += entry.Value
		// Zero-value entries stay in the breakdown for audit.
		modifiers = append(modifiers, pf.Modifier{
			Source: entry.Source,
			Value:  entry.Value,
		})
	}

	return pf.ValueWithBreakdown{
		Label:     spec.label,
		Total:     total,
		Modifiers: modifiers,
		Overrides: spec.overrides,
	}
}
