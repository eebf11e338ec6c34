package profilerepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/pgdb"
)

// PostgresRepository reads the hair_profiles table.
type PostgresRepository struct {
	db pgdb.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db pgdb.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// LatestForUser returns the user's most recently created profile.
func (r *PostgresRepository) LatestForUser(ctx context.Context, userID string) (scoring.HairProfile, bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id::text, user_id::text, COALESCE(hair_type, ''), COALESCE(hair_porosity, ''),
		       COALESCE(hair_density, ''), COALESCE(hair_concerns, '{}'), COALESCE(scalp_condition, ''),
		       COALESCE(climate, ''), created_at
		FROM hair_profiles
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID)
	var p scoring.HairProfile
	err := row.Scan(&p.ID, &p.UserID, &p.HairType, &p.Porosity, &p.Density, &p.Concerns, &p.ScalpCondition, &p.Climate, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return scoring.HairProfile{}, false, nil
	}
	if err != nil {
		return scoring.HairProfile{}, false, fmt.Errorf("load hair profile: %w", err)
	}
	return p, true, nil
}

var _ scoring.ProfileRepository = (*PostgresRepository)(nil)
