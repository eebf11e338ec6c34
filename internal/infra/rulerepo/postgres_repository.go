package rulerepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/yanqian/hairmatch/internal/domain/discovery"
	"github.com/yanqian/hairmatch/internal/domain/scoring"
	"github.com/yanqian/hairmatch/internal/infra/pgdb"
)

// PostgresRepository reads and writes the ingredient_rules table.
type PostgresRepository struct {
	db pgdb.DB
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(db pgdb.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Lookup returns the rules whose normalized name is in names.
func (r *PostgresRepository) Lookup(ctx context.Context, names []string) ([]scoring.IngredientRule, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+selectRuleColumns+`
		FROM ingredient_rules
		WHERE normalized_name = ANY($1)
	`, names)
	if err != nil {
		return nil, fmt.Errorf("query ingredient rules: %w", err)
	}
	defer rows.Close()

	var out []scoring.IngredientRule
	for rows.Next() {
		var rule scoring.IngredientRule
		if err := rows.Scan(ruleFields(&rule)...); err != nil {
			return nil, fmt.Errorf("scan ingredient rule: %w", err)
		}
		out = append(out, rule)
	}
	return out, rows.Err()
}

// ExistingNames returns which of names already have a rule.
func (r *PostgresRepository) ExistingNames(ctx context.Context, names []string) ([]string, error) {
	if len(names) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT normalized_name
		FROM ingredient_rules
		WHERE normalized_name = ANY($1)
	`, names)
	if err != nil {
		return nil, fmt.Errorf("query existing rules: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

var insertRuleSQL = func() string {
	placeholders := make([]string, len(ruleValues(scoring.IngredientRule{})))
	for i := range placeholders {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}
	return `INSERT INTO ingredient_rules (` + ruleColumns + `)
		VALUES (` + strings.Join(placeholders, ", ") + `)
		ON CONFLICT (normalized_name) DO NOTHING`
}()

// InsertRules writes rules, leaving existing names untouched.
func (r *PostgresRepository) InsertRules(ctx context.Context, rules []scoring.IngredientRule) (int, error) {
	created := 0
	for _, rule := range rules {
		tag, err := r.db.Exec(ctx, insertRuleSQL, ruleValues(rule)...)
		if err != nil {
			return created, fmt.Errorf("insert rule %q: %w", rule.NormalizedName, err)
		}
		created += int(tag.RowsAffected())
	}
	return created, nil
}

var (
	_ scoring.RuleRepository = (*PostgresRepository)(nil)
	_ discovery.RuleStore    = (*PostgresRepository)(nil)
)
