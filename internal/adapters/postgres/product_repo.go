package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyfac/catalog/internal/core/domain"
)

// ProductRepo implements ports.ProductRepository with pgx.
type ProductRepo struct {
	db *DB
}

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(db *DB) *ProductRepo {
	return &ProductRepo{db: db}
}

const productColumns = `id, name, slug, description, short_desc, category,
	ranges, skin_types, volume, price, active_ingredients, image_url, images,
	usage_instructions, benefits, in_stock, is_active, created_at, updated_at`

func scanProduct(row interface{ Scan(dest ...any) error }) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.ShortDesc, &p.Category,
		&p.Ranges, &p.SkinTypes, &p.Volume, &p.Price, &p.ActiveIngredients,
		&p.ImageURL, &p.Images, &p.UsageInstructions, &p.Benefits,
		&p.InStock, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &p, nil
}

// List returns products matching the filter and the unpaginated total.
func (r *ProductRepo) List(ctx context.Context, filter domain.ProductFilter) ([]domain.Product, int, error) {
	where := []string{"is_active = TRUE"}
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		where = append(where, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Range != "" {
		args = append(args, filter.Range)
		where = append(where, fmt.Sprintf("$%d = ANY(ranges)", len(args)))
	}
	if filter.SkinType != "" {
		args = append(args, filter.SkinType)
		where = append(where, fmt.Sprintf("$%d = ANY(skin_types)", len(args)))
	}
	if filter.InStock != nil {
		args = append(args, *filter.InStock)
		where = append(where, fmt.Sprintf("in_stock = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if filter.MinPrice > 0 {
		args = append(args, filter.MinPrice)
		where = append(where, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice > 0 {
		args = append(args, filter.MaxPrice)
		where = append(where, fmt.Sprintf("price <= $%d", len(args)))
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.Pool.QueryRow(ctx,
		"SELECT count(*) FROM products WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM products WHERE %s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, productColumns, cond, orderClause(filter.SortBy), len(args)-1, len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, *p)
	}
	return products, total, translateErr(rows.Err())
}

// orderClause maps the public sort keys onto ORDER BY clauses. Unknown keys
// fall back to newest-first.
func orderClause(sortBy string) string {
	switch sortBy {
	case "price-asc":
		return "price ASC"
	case "price-desc":
		return "price DESC"
	case "name-asc":
		return "name ASC"
	case "name-desc":
		return "name DESC"
	default:
		return "created_at DESC"
	}
}

// GetByID returns a product by UUID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return scanProduct(r.db.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM products WHERE id = $1", productColumns), id))
}

// GetBySlug returns a product by slug.
func (r *ProductRepo) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	return scanProduct(r.db.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM products WHERE slug = $1", productColumns), slug))
}

// Create inserts a product; id and timestamps come back from the database.
func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO products (name, slug, description, short_desc, category,
			ranges, skin_types, volume, price, active_ingredients, image_url,
			images, usage_instructions, benefits, in_stock, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`, p.Name, p.Slug, p.Description, p.ShortDesc, p.Category,
		p.Ranges, p.SkinTypes, p.Volume, p.Price, p.ActiveIngredients,
		p.ImageURL, p.Images, p.UsageInstructions, p.Benefits,
		p.InStock, p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	return translateErr(err)
}

// Update replaces the mutable fields of a product.
func (r *ProductRepo) Update(ctx context.Context, p *domain.Product) error {
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE products SET
			name = $2, slug = $3, description = $4, short_desc = $5,
			category = $6, ranges = $7, skin_types = $8, volume = $9,
			price = $10, active_ingredients = $11, image_url = $12,
			images = $13, usage_instructions = $14, benefits = $15,
			in_stock = $16, is_active = $17, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, p.ID, p.Name, p.Slug, p.Description, p.ShortDesc, p.Category,
		p.Ranges, p.SkinTypes, p.Volume, p.Price, p.ActiveIngredients,
		p.ImageURL, p.Images, p.UsageInstructions, p.Benefits,
		p.InStock, p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	return translateErr(err)
}

// Delete removes a product by id.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
