// Package sheet defines the interface for character and sheet operations
package sheet

//go:generate mockgen -destination=mock/mock_service.go -package=sheetmock github.com/herosheet/sheet-api/internal/services/sheet Service

import (
	"context"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// Service defines the interface for character and sheet operations
type Service interface {
	// Character lifecycle
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*CreateCharacterOutput, error)
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*GetCharacterOutput, error)
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*UpdateCharacterOutput, error)
	DeleteCharacter(ctx context.Context, input *DeleteCharacterInput) (*DeleteCharacterOutput, error)
	ListCharacters(ctx context.Context, input *ListCharactersInput) (*ListCharactersOutput, error)

	// Derived sheet
	GetSheet(ctx context.Context, input *GetSheetInput) (*GetSheetOutput, error)

	// Dice
	RollCheck(ctx context.Context, input *RollCheckInput) (*RollCheckOutput, error)
}

// CreateCharacterInput defines the request for creating a character
type CreateCharacterInput struct {
	PlayerID string
	Record   *pf.CharacterRecord
}

// CreateCharacterOutput defines the response for creating a character
type CreateCharacterOutput struct {
	Record *pf.CharacterRecord
}

// GetCharacterInput defines the request for getting a character
type GetCharacterInput struct {
	CharacterID string
}

// GetCharacterOutput defines the response for getting a character
type GetCharacterOutput struct {
	Record *pf.CharacterRecord
}

// UpdateCharacterInput defines the request for updating a character
type UpdateCharacterInput struct {
	Record *pf.CharacterRecord
}

// UpdateCharacterOutput defines the response for updating a character
type UpdateCharacterOutput struct {
	Record *pf.CharacterRecord
}

// DeleteCharacterInput defines the request for deleting a character
type DeleteCharacterInput struct {
	CharacterID string
}

// DeleteCharacterOutput defines the response for deleting a character
type DeleteCharacterOutput struct{}

// ListCharactersInput defines the request for listing a player's characters
type ListCharactersInput struct {
	PlayerID string
}

// ListCharactersOutput defines the response for listing characters
type ListCharactersOutput struct {
	Records []*pf.CharacterRecord
}

// GetSheetInput defines the request for the derived sheet
type GetSheetInput struct {
	CharacterID string
}

// GetSheetOutput defines the response carrying the derived sheet
type GetSheetOutput struct {
	Sheet *pf.CharacterSheet

	// FromCache reports whether the sheet was served without recomputing
	FromCache bool
}

// RollCheckInput defines the request for rolling a d20 check against a
// sheet value. Target is a sheet target key such as "skill_stealth",
// "save_will", or "initiative".
type RollCheckInput struct {
	CharacterID string
	Target      string
}

// RollCheckOutput defines the response for a rolled check
type RollCheckOutput struct {
	// Roll is the raw d20 result
	Roll int32

	// Modifier is the sheet's resolved total for the target
	Modifier int32

	// Total is roll plus modifier
	Total int32

	// Description is the human-readable roll notation
	Description string

	// Breakdown explains the modifier
	Breakdown pf.ValueWithBreakdown
}
