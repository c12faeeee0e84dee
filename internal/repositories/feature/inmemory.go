package feature

import (
	"context"
	"sync"

	"github.com/herosheet/sheet-api/internal/entities/pf"
	"github.com/herosheet/sheet-api/internal/errors"
)

// InMemoryRepository implements Repository using in-memory storage.
// Used for tests and for seeding fixed content without a Redis instance.
type InMemoryRepository struct {
	mu    sync.RWMutex
	store map[string]*pf.Feature
}

// NewInMemory creates a new in-memory feature repository
func NewInMemory() *InMemoryRepository {
	return &InMemoryRepository{
		store: make(map[string]*pf.Feature),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Get retrieves a feature definition by category and name
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument("feature name is required")
	}

	key := pf.FeatureKey(input.Category, input.Name)

	r.mu.RLock()
	defer r.mu.RUnlock()

	f, exists := r.store[key]
	if !exists {
		return nil, errors.NotFoundf("feature %s not found", key)
	}

	// Return a copy to prevent external modification
	cp := *f
	return &GetOutput{Feature: &cp}, nil
}

// Put stores a feature definition
func (r *InMemoryRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Feature == nil {
		return nil, errors.InvalidArgument("feature is required")
	}
	if input.Feature.Name == "" {
		return nil, errors.InvalidArgument("feature name is required")
	}

	cp := *input.Feature

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[cp.Key()] = &cp

	return &PutOutput{Feature: input.Feature}, nil
}

// PutBatch stores multiple feature definitions
func (r *InMemoryRepository) PutBatch(ctx context.Context, input PutBatchInput) (*PutBatchOutput, error) {
	for _, f := range input.Features {
		if f == nil || f.Name == "" {
			return nil, errors.InvalidArgument("every feature needs a name")
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, f := range input.Features {
		cp := *f
		r.store[cp.Key()] = &cp
	}

	return &PutBatchOutput{Count: len(input.Features)}, nil
}
