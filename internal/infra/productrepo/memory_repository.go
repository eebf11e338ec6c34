package productrepo

import (
	"context"
	"sync"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// MemoryRepository keeps product ingredient data in memory for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[string]scoring.ProductIngredients
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[string]scoring.ProductIngredients)}
}

// Save replaces the ingredient data for data.ProductID.
func (r *MemoryRepository) Save(_ context.Context, data scoring.ProductIngredients) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[data.ProductID] = data
	return nil
}

// Ingredients implements scoring.ProductRepository.
func (r *MemoryRepository) Ingredients(_ context.Context, productID string) (scoring.ProductIngredients, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.products[productID]
	return data, ok, nil
}

var _ scoring.ProductRepository = (*MemoryRepository)(nil)
