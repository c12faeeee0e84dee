// Package sheetcache provides the interface for cached derived sheets
package sheetcache

//go:generate mockgen -destination=mock/mock_repository.go -package=sheetcachemock github.com/herosheet/sheet-api/internal/repositories/sheetcache Repository

import (
	"context"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// Repository defines the interface for the derived-sheet cache. Entries
// carry the source record's update timestamp so callers can detect
// staleness; the cache itself never recomputes.
type Repository interface {
	// Get retrieves a cached sheet by character ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound on a cache miss
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores a computed sheet, overwriting any cached entry
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// Invalidate drops the cached sheet for a character. Missing entries
	// are not an error.
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.Internal for storage failures
	Invalidate(ctx context.Context, input InvalidateInput) (*InvalidateOutput, error)
}

// GetInput defines the input for a cache lookup
type GetInput struct {
	CharacterID string
}

// GetOutput defines the output of a cache lookup
type GetOutput struct {
	Sheet *pf.CharacterSheet

	// RecordUpdatedAt is the source record's update timestamp at compute
	// time, for staleness checks
	RecordUpdatedAt int64
}

// PutInput defines the input for storing a computed sheet
type PutInput struct {
	Sheet           *pf.CharacterSheet
	RecordUpdatedAt int64
}

// PutOutput defines the output of storing a computed sheet
type PutOutput struct{}

// InvalidateInput defines the input for dropping a cached sheet
type InvalidateInput struct {
	CharacterID string
}

// InvalidateOutput defines the output of dropping a cached sheet
type InvalidateOutput struct{}
