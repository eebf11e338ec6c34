package profilerepo

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
)

// MemoryRepository keeps hair profiles in memory for tests/dev.
type MemoryRepository struct {
	mu       sync.RWMutex
	profiles map[string][]scoring.HairProfile
}

// NewMemoryRepository constructs an empty repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{profiles: make(map[string][]scoring.HairProfile)}
}

// Save stores a profile, assigning an id and creation time when missing.
func (r *MemoryRepository) Save(profile scoring.HairProfile) scoring.HairProfile {
	if profile.ID == "" {
		profile.ID = uuid.NewString()
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now().UTC()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = append(r.profiles[profile.UserID], profile)
	return profile
}

// LatestForUser implements scoring.ProfileRepository.
func (r *MemoryRepository) LatestForUser(_ context.Context, userID string) (scoring.HairProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var (
		latest scoring.HairProfile
		found  bool
	)
	for _, p := range r.profiles[userID] {
		if !found || !p.CreatedAt.Before(latest.CreatedAt) {
			latest = p
			found = true
		}
	}
	return latest, found, nil
}

var _ scoring.ProfileRepository = (*MemoryRepository)(nil)
