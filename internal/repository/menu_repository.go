package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/coffee-shop-service/internal/domain"
)

// MenuFilter captures catalog search parameters. Empty fields are ignored.
type MenuFilter struct {
	Search     string
	CategoryID string
}

// MenuRepository reads catalog rows.
type MenuRepository interface {
	ListAll(ctx context.Context) ([]domain.MenuItem, error)
	Search(ctx context.Context, filter MenuFilter) ([]domain.MenuItem, error)
}

type menuRepository struct {
	pool *pgxpool.Pool
}

// NewMenuRepository returns a Postgres-backed implementation.
func NewMenuRepository(pool *pgxpool.Pool) MenuRepository {
	return &menuRepository{pool: pool}
}

const menuColumns = `id, menu_id, slug, name, description, price, category_id, image_url, rating, reviews, created_at`

func (r *menuRepository) ListAll(ctx context.Context) ([]domain.MenuItem, error) {
	if r.pool == nil {
		return nil, ErrStoreUnavailable
	}
	rows, err := r.pool.Query(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

func (r *menuRepository) Search(ctx context.Context, filter MenuFilter) ([]domain.MenuItem, error) {
	if r.pool == nil {
		return nil, ErrStoreUnavailable
	}
	query, args := buildMenuSearch(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMenuItems(rows)
}

func buildMenuSearch(filter MenuFilter) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.Search != "" {
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		clauses = append(clauses, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if filter.CategoryID != "" {
		args = append(args, filter.CategoryID)
		clauses = append(clauses, fmt.Sprintf("category_id::text = $%d", len(args)))
	}

	query := fmt.Sprintf(`SELECT %s FROM menu_items WHERE %s ORDER BY id`,
		menuColumns, strings.Join(clauses, " AND "))
	return query, args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func scanMenuItems(rows pgx.Rows) ([]domain.MenuItem, error) {
	result := []domain.MenuItem{}
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(
			&item.ID,
			&item.MenuID,
			&item.Slug,
			&item.Name,
			&item.Description,
			&item.Price,
			&item.CategoryID,
			&item.ImageURL,
			&item.Rating,
			&item.Reviews,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, rows.Err()
}
