package scorerepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/pgdb"
)

const scoreColumns = `user_id::text, product_id::text, COALESCE(hair_profile_id::text, ''),
	overall_score, moisture_score, scalp_care_score, curl_definition_score, frizz_control_score,
	strength_repair_score, ingredient_safety_score, goal_alignment_score, performance_score,
	score_breakdown::text, COALESCE(score_explanation, ''), updated_at`

// PostgresRepository persists compatibility scores.
type PostgresRepository struct {
	db pgdb.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db pgdb.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert replaces the row for (user_id, product_id).
func (r *PostgresRepository) Upsert(ctx context.Context, s scoring.StoredScore) error {
	breakdown, err := json.Marshal(s.Breakdown)
	if err != nil {
		return fmt.Errorf("encode score breakdown: %w", err)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO compatibility_scores (
			user_id, product_id, hair_profile_id,
			overall_score, moisture_score, scalp_care_score, curl_definition_score, frizz_control_score,
			strength_repair_score, ingredient_safety_score, goal_alignment_score, performance_score,
			score_breakdown, score_explanation, updated_at
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::jsonb, $14, $15)
		ON CONFLICT (user_id, product_id) DO UPDATE SET
			hair_profile_id = EXCLUDED.hair_profile_id,
			overall_score = EXCLUDED.overall_score,
			moisture_score = EXCLUDED.moisture_score,
			scalp_care_score = EXCLUDED.scalp_care_score,
			curl_definition_score = EXCLUDED.curl_definition_score,
			frizz_control_score = EXCLUDED.frizz_control_score,
			strength_repair_score = EXCLUDED.strength_repair_score,
			ingredient_safety_score = EXCLUDED.ingredient_safety_score,
			goal_alignment_score = EXCLUDED.goal_alignment_score,
			performance_score = EXCLUDED.performance_score,
			score_breakdown = EXCLUDED.score_breakdown,
			score_explanation = EXCLUDED.score_explanation,
			updated_at = EXCLUDED.updated_at
	`,
		s.UserID, s.ProductID, s.HairProfileID,
		s.OverallScore, s.MoistureScore, s.ScalpCareScore, s.CurlDefinitionScore, s.FrizzControlScore,
		s.StrengthRepairScore, s.IngredientSafetyScore, s.GoalAlignmentScore, s.PerformanceScore,
		string(breakdown), s.Explanation, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert compatibility score: %w", err)
	}
	return nil
}

// Get loads the score for (userID, productID).
func (r *PostgresRepository) Get(ctx context.Context, userID, productID string) (scoring.StoredScore, bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+scoreColumns+`
		FROM compatibility_scores
		WHERE user_id = $1 AND product_id = $2
	`, userID, productID)
	score, err := scanScore(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return scoring.StoredScore{}, false, nil
	}
	if err != nil {
		return scoring.StoredScore{}, false, err
	}
	return score, true, nil
}

// ListByUser returns the user's scores, most recently updated first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]scoring.StoredScore, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+scoreColumns+`
		FROM compatibility_scores
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list compatibility scores: %w", err)
	}
	defer rows.Close()

	var out []scoring.StoredScore
	for rows.Next() {
		score, err := scanScore(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, score)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanScore(row rowScanner) (scoring.StoredScore, error) {
	var (
		s         scoring.StoredScore
		breakdown string
	)
	err := row.Scan(
		&s.UserID, &s.ProductID, &s.HairProfileID,
		&s.OverallScore, &s.MoistureScore, &s.ScalpCareScore, &s.CurlDefinitionScore, &s.FrizzControlScore,
		&s.StrengthRepairScore, &s.IngredientSafetyScore, &s.GoalAlignmentScore, &s.PerformanceScore,
		&breakdown, &s.Explanation, &s.UpdatedAt,
	)
	if err != nil {
		return scoring.StoredScore{}, err
	}
	if breakdown != "" {
		if err := json.Unmarshal([]byte(breakdown), &s.Breakdown); err != nil {
			return scoring.StoredScore{}, fmt.Errorf("decode score breakdown: %w", err)
		}
	}
	return s, nil
}

var _ scoring.ScoreRepository = (*PostgresRepository)(nil)
