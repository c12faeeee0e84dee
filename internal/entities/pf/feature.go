package pf

import "strings"

// FeatureCategory groups addressable game content. The category order in
// the resolution pipeline is fixed; see engine/pfcalc.
type FeatureCategory string

// Feature categories
const (
	CategoryABP          FeatureCategory = "abp"
	CategoryTrait        FeatureCategory = "trait"
	CategoryArchetype    FeatureCategory = "archetype"
	CategoryClassFeature FeatureCategory = "class"
	CategoryDiscovery    FeatureCategory = "discovery"
	CategoryTalent       FeatureCategory = "talent"
	CategoryKiPower      FeatureCategory = "ki_power"
	CategoryBloodline    FeatureCategory = "bloodline"
	CategoryFeat         FeatureCategory = "feat"
	CategoryCorruption   FeatureCategory = "corruption"
	CategorySpell        FeatureCategory = "spell"
)

// Benefit is one declared flat bonus on a feature: "add Value of Type to
// Target". Type is free text in content and parses into the closed
// BonusType enum.
type Benefit struct {
	Target string `json:"target"`
	Value  int32  `json:"value"`
	Type   string `json:"type"`
}

// Feature is an addressable unit of game content. Benefits are the
// fallback applied when no effect implementation is registered for the
// feature's key. Archetype features declare the base class features they
// replace or alter; archetype definitions list the feature keys they grant.
type Feature struct {
	Category    FeatureCategory `json:"category"`
	Name        string          `json:"name"`
	DisplayName string          `json:"display_name"`
	Description string          `json:"description,omitempty"`
	Benefits    []Benefit       `json:"benefits,omitempty"`
	Grants      []string        `json:"grants,omitempty"`
	Replaces    []string        `json:"replaces,omitempty"`
	Alters      []string        `json:"alters,omitempty"`
}

// Key returns the stable feature identifier, e.g. "feat.power_attack"
func (f *Feature) Key() string {
	return FeatureKey(f.Category, f.Name)
}

// FeatureKey builds the stable identifier for a category and name
func FeatureKey(category FeatureCategory, name string) string {
	return string(category) + "." + NormalizeFeatureName(name)
}

// NormalizeFeatureName lowercases a display name and collapses separators
// so "Power Attack" and "power_attack" address the same feature
func NormalizeFeatureName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}
