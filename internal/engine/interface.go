// Package engine defines the rules-calculation boundary
package engine

//go:generate mockgen -destination=mock/mock_engine.go -package=enginemock github.com/herosheet/sheet-api/internal/engine Engine

import (
	"context"
)

// Engine computes derived character sheets from raw character records
type Engine interface {
	// CalculateCharacterSheet runs the full feature-resolution pipeline
	// and assembles the explained sheet. Deterministic for a given
	// record; per-feature failures degrade to skipped features and never
	// abort the pass.
	CalculateCharacterSheet(
		ctx context.Context,
		input *CalculateCharacterSheetInput,
	) (*CalculateCharacterSheetOutput, error)

	// Utility methods
	CalculateAbilityModifier(score int32) int32
}
