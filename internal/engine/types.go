package engine

import (
	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// CalculateCharacterSheetInput defines the input for sheet calculation
type CalculateCharacterSheetInput struct {
	Record *pf.CharacterRecord
}

// CalculateCharacterSheetOutput defines the output of sheet calculation
type CalculateCharacterSheetOutput struct {
	Sheet *pf.CharacterSheet
}
