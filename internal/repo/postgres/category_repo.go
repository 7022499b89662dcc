package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bazarhat/backend/internal/domain/model"
)

var ErrCategoryNotFound = errors.New("category not found")

type CategoryRepo struct {
	pool *pgxpool.Pool
}

func NewCategoryRepo(pool *pgxpool.Pool) *CategoryRepo {
	return &CategoryRepo{pool: pool}
}

func (r *CategoryRepo) ListActive(ctx context.Context) ([]model.Category, error) {
	return r.list(ctx, `
SELECT id, name, slug, icon, sort_order, is_active, created_at
FROM categories
WHERE is_active = TRUE
ORDER BY sort_order ASC, id ASC
`)
}

func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	return r.list(ctx, `
SELECT id, name, slug, icon, sort_order, is_active, created_at
FROM categories
ORDER BY sort_order ASC, id ASC
`)
}

func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (model.Category, error) {
	if r.pool == nil {
		return model.Category{}, fmt.Errorf("postgres pool is nil")
	}

	var c model.Category
	err := r.pool.QueryRow(ctx, `
SELECT id, name, slug, icon, sort_order, is_active, created_at
FROM categories
WHERE id = $1
`, id).Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.SortOrder, &c.IsActive, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, ErrCategoryNotFound
		}
		return model.Category{}, fmt.Errorf("query category: %w", err)
	}

	return c, nil
}

func (r *CategoryRepo) Create(ctx context.Context, c model.Category) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO categories (name, slug, icon, sort_order, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING id
`, c.Name, c.Slug, c.Icon, c.SortOrder, c.IsActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}

	return id, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c model.Category) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	tag, err := r.pool.Exec(ctx, `
UPDATE categories
SET name = $2, slug = $3, icon = $4, sort_order = $5, is_active = $6
WHERE id = $1
`, c.ID, c.Name, c.Slug, c.Icon, c.SortOrder, c.IsActive)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}

	return nil
}

func (r *CategoryRepo) ListSubcategories(ctx context.Context, categoryID int64, activeOnly bool) ([]model.Subcategory, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `
SELECT id, category_id, name, slug, sort_order, is_active, created_at
FROM subcategories
WHERE category_id = $1
ORDER BY sort_order ASC, id ASC
`
	if activeOnly {
		query = `
SELECT id, category_id, name, slug, sort_order, is_active, created_at
FROM subcategories
WHERE category_id = $1 AND is_active = TRUE
ORDER BY sort_order ASC, id ASC
`
	}

	rows, err := r.pool.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("query subcategories: %w", err)
	}
	defer rows.Close()

	subs := make([]model.Subcategory, 0)
	for rows.Next() {
		var s model.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name, &s.Slug, &s.SortOrder, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan subcategory: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subcategory rows: %w", err)
	}

	return subs, nil
}

func (r *CategoryRepo) CreateSubcategory(ctx context.Context, s model.Subcategory) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var id int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO subcategories (category_id, name, slug, sort_order, is_active, created_at)
VALUES ($1, $2, $3, $4, $5, NOW())
RETURNING id
`, s.CategoryID, s.Name, s.Slug, s.SortOrder, s.IsActive).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert subcategory: %w", err)
	}

	return id, nil
}

func (r *CategoryRepo) list(ctx context.Context, query string) ([]model.Category, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := make([]model.Category, 0)
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Icon, &c.SortOrder, &c.IsActive, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category rows: %w", err)
	}

	return categories, nil
}
