// Package feature provides the interface for feature-definition lookup
package feature

//go:generate mockgen -destination=mock/mock_repository.go -package=featuremock github.com/herosheet/sheet-api/internal/repositories/feature Repository

import (
	"context"

	"github.com/herosheet/sheet-api/internal/entities/pf"
)

// Repository defines the interface for feature-definition storage
type Repository interface {
	// Get retrieves a feature definition by category and name
	// Returns errors.InvalidArgument for empty names
	// Returns errors.NotFound if no definition is stored
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Put stores a feature definition, overwriting any existing one
	// Returns errors.InvalidArgument for invalid definitions
	// Returns errors.Internal for storage failures
	Put(ctx context.Context, input PutInput) (*PutOutput, error)

	// PutBatch stores multiple definitions in one call
	// Returns errors.InvalidArgument if any definition is invalid
	// Returns errors.Internal for storage failures
	PutBatch(ctx context.Context, input PutBatchInput) (*PutBatchOutput, error)
}

// GetInput defines the input for looking up a feature definition
type GetInput struct {
	Category pf.FeatureCategory
	Name     string
}

// GetOutput defines the output of a feature lookup
type GetOutput struct {
	Feature *pf.Feature
}

// PutInput defines the input for storing a feature definition
type PutInput struct {
	Feature *pf.Feature
}

// PutOutput defines the output of storing a feature definition
type PutOutput struct {
	Feature *pf.Feature
}

// PutBatchInput defines the input for storing multiple definitions
type PutBatchInput struct {
	Features []*pf.Feature
}

// PutBatchOutput defines the output of a batch store
type PutBatchOutput struct {
	Count int
}
