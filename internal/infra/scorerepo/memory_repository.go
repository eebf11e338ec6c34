package scorerepo

import (
	"context"
	"sort"
	"sync"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

type scoreKey struct {
	userID    string
	productID string
}

// MemoryRepository keeps scores in memory for tests/dev.
type MemoryRepository struct {
	mu     sync.RWMutex
	scores map[scoreKey]scoring.StoredScore
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{scores: make(map[scoreKey]scoring.StoredScore)}
}

// Upsert implements scoring.ScoreRepository.
func (r *MemoryRepository) Upsert(_ context.Context, s scoring.StoredScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scores[scoreKey{userID: s.UserID, productID: s.ProductID}] = s
	return nil
}

// Get implements scoring.ScoreRepository.
func (r *MemoryRepository) Get(_ context.Context, userID, productID string) (scoring.StoredScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.scores[scoreKey{userID: userID, productID: productID}]
	return s, ok, nil
}

// ListByUser implements scoring.ScoreRepository.
func (r *MemoryRepository) ListByUser(_ context.Context, userID string) ([]scoring.StoredScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []scoring.StoredScore
	for key, s := range r.scores {
		if key.userID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].ProductID < out[j].ProductID
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

var _ scoring.ScoreRepository = (*MemoryRepository)(nil)
