package productrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/pgdb"
)

// PostgresRepository reads the product_ingredients table.
type PostgresRepository struct {
	db pgdb.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db pgdb.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Ingredients implements scoring.ProductRepository.
func (r *PostgresRepository) Ingredients(ctx context.Context, productID string) (scoring.ProductIngredients, bool, error) {
	row := r.db.QueryRow(ctx, `
		SELECT product_id::text, COALESCE(raw_ingredients_text, ''), parsed_ingredients::text
		FROM product_ingredients
		WHERE product_id = $1
		LIMIT 1
	`, productID)
	var (
		data   scoring.ProductIngredients
		parsed *string
	)
	err := row.Scan(&data.ProductID, &data.RawText, &parsed)
	if errors.Is(err, pgx.ErrNoRows) {
		return scoring.ProductIngredients{}, false, nil
	}
	if err != nil {
		return scoring.ProductIngredients{}, false, fmt.Errorf("load product ingredients: %w", err)
	}
	if parsed != nil {
		data.Parsed = decodeParsed([]byte(*parsed))
	}
	return data, true, nil
}

// Save upserts a product's ingredient data.
func (r *PostgresRepository) Save(ctx context.Context, data scoring.ProductIngredients) error {
	parsed, err := encodeParsed(data.Parsed)
	if err != nil {
		return fmt.Errorf("encode parsed ingredients: %w", err)
	}
	var parsedArg any
	if parsed != nil {
		parsedArg = string(parsed)
	}
	_, err = r.db.Exec(ctx, `
		INSERT INTO product_ingredients (product_id, raw_ingredients_text, parsed_ingredients)
		VALUES ($1, $2, $3::jsonb)
		ON CONFLICT (product_id) DO UPDATE
		SET raw_ingredients_text = EXCLUDED.raw_ingredients_text,
		    parsed_ingredients = EXCLUDED.parsed_ingredients
	`, data.ProductID, data.RawText, parsedArg)
	if err != nil {
		return fmt.Errorf("save product ingredients: %w", err)
	}
	return nil
}

var _ scoring.ProductRepository = (*PostgresRepository)(nil)
