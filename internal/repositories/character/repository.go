// Package character provides the interface for character-record persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/herosheet/sheet-api/internal/repositories/character Repository

import (
	"context"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// Repository defines the interface for character-record persistence
type Repository interface {
	// Create creates a new character record
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a record with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a character record by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the record doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update updates an existing character record
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the record doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes a character record by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the record doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// ListByPlayerID retrieves all character records for a player
	// Returns errors.InvalidArgument for empty player IDs
	// Returns errors.Internal for storage failures
	ListByPlayerID(ctx context.Context, input ListByPlayerIDInput) (*ListByPlayerIDOutput, error)
}

// CreateInput defines the input for creating a character record
type CreateInput struct {
	Record *pf.CharacterRecord
}

// CreateOutput defines the output for creating a character record
type CreateOutput struct {
	Record *pf.CharacterRecord
}

// GetInput defines the input for getting a character record
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a character record
type GetOutput struct {
	Record *pf.CharacterRecord
}

// UpdateInput defines the input for updating a character record
type UpdateInput struct {
	Record *pf.CharacterRecord
}

// UpdateOutput defines the output for updating a character record
type UpdateOutput struct {
	Record *pf.CharacterRecord
}

// DeleteInput defines the input for deleting a character record
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a character record
type DeleteOutput struct {
	// Empty for now, can be extended later
}

// ListByPlayerIDInput defines the input for listing records by player
type ListByPlayerIDInput struct {
	PlayerID string
}

// ListByPlayerIDOutput defines the output for listing records by player
type ListByPlayerIDOutput struct {
	Records []*pf.CharacterRecord
}
