package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyfac/catalog/internal/core/domain"
)

// StoreRepo implements ports.StoreRepository with pgx.
type StoreRepo struct {
	db *DB
}

// NewStoreRepo creates a new StoreRepo.
func NewStoreRepo(db *DB) *StoreRepo {
	return &StoreRepo{db: db}
}

const storeColumns = `id, name, slug, address, city, postal_code, country,
	lat, lng, ranges, phone, email, website, google_maps_url, services,
	is_active, is_featured, created_at, updated_at`

func scanStore(row interface{ Scan(dest ...any) error }) (*domain.Store, error) {
	var s domain.Store
	err := row.Scan(
		&s.ID, &s.Name, &s.Slug, &s.Address, &s.City, &s.PostalCode, &s.Country,
		&s.Location.Lat, &s.Location.Lng, &s.Ranges, &s.Phone, &s.Email,
		&s.Website, &s.GoogleMapsURL, &s.Services,
		&s.IsActive, &s.IsFeatured, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, translateErr(err)
	}
	return &s, nil
}

// List returns stores matching the filter and the unpaginated total.
// Featured stores sort first, then by name, mirroring the storefront order.
func (r *StoreRepo) List(ctx context.Context, filter domain.StoreFilter) ([]domain.Store, int, error) {
	where := []string{"is_active = TRUE"}
	var args []any

	if filter.PostalCode != "" {
		args = append(args, filter.PostalCode+"%")
		where = append(where, fmt.Sprintf("postal_code LIKE $%d", len(args)))
	}
	if filter.City != "" {
		args = append(args, filter.City)
		where = append(where, fmt.Sprintf("LOWER(city) = LOWER($%d)", len(args)))
	}
	if filter.Range != "" {
		args = append(args, filter.Range)
		where = append(where, fmt.Sprintf("$%d = ANY(ranges)", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR city ILIKE $%d OR address ILIKE $%d)", n, n, n))
	}

	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.Pool.QueryRow(ctx,
		"SELECT count(*) FROM stores WHERE "+cond, args...,
	).Scan(&total); err != nil {
		return nil, 0, translateErr(err)
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := fmt.Sprintf(`
		SELECT %s FROM stores WHERE %s
		ORDER BY is_featured DESC, name ASC
		LIMIT $%d OFFSET $%d
	`, storeColumns, cond, len(args)-1, len(args))

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translateErr(err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, 0, err
		}
		stores = append(stores, *s)
	}
	return stores, total, translateErr(rows.Err())
}

// ListActive returns every active store. The nearby search scans this set
// in memory, so the order here is the tie-break order for equal distances.
func (r *StoreRepo) ListActive(ctx context.Context) ([]domain.Store, error) {
	rows, err := r.db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM stores WHERE is_active = TRUE ORDER BY name ASC
	`, storeColumns))
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *s)
	}
	return stores, translateErr(rows.Err())
}

// SearchByPostalPrefix returns active stores whose postal code starts with
// the given prefix, optionally restricted to a product range.
func (r *StoreRepo) SearchByPostalPrefix(ctx context.Context, prefix, productRange string) ([]domain.Store, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stores
		WHERE is_active = TRUE AND postal_code LIKE $1
	`, storeColumns)
	args := []any{prefix + "%"}
	if productRange != "" {
		query += " AND $2 = ANY(ranges)"
		args = append(args, productRange)
	}
	query += " ORDER BY name ASC"

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		stores = append(stores, *s)
	}
	return stores, translateErr(rows.Err())
}

// GetByID returns a store by UUID.
func (r *StoreRepo) GetByID(ctx context.Context, id string) (*domain.Store, error) {
	return scanStore(r.db.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM stores WHERE id = $1", storeColumns), id))
}

// GetBySlug returns a store by slug.
func (r *StoreRepo) GetBySlug(ctx context.Context, slug string) (*domain.Store, error) {
	return scanStore(r.db.Pool.QueryRow(ctx,
		fmt.Sprintf("SELECT %s FROM stores WHERE slug = $1", storeColumns), slug))
}

// Create inserts a store; id and timestamps are filled in from the database.
func (r *StoreRepo) Create(ctx context.Context, s *domain.Store) error {
	err := r.db.Pool.QueryRow(ctx, `
		INSERT INTO stores (name, slug, address, city, postal_code, country,
			lat, lng, ranges, phone, email, website, google_maps_url, services,
			is_active, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`, s.Name, s.Slug, s.Address, s.City, s.PostalCode, s.Country,
		s.Location.Lat, s.Location.Lng, s.Ranges, s.Phone, s.Email,
		s.Website, s.GoogleMapsURL, s.Services, s.IsActive, s.IsFeatured,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	return translateErr(err)
}

// Update replaces the mutable fields of a store.
func (r *StoreRepo) Update(ctx context.Context, s *domain.Store) error {
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE stores SET
			name = $2, slug = $3, address = $4, city = $5, postal_code = $6,
			country = $7, lat = $8, lng = $9, ranges = $10, phone = $11,
			email = $12, website = $13, google_maps_url = $14, services = $15,
			is_active = $16, is_featured = $17, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at
	`, s.ID, s.Name, s.Slug, s.Address, s.City, s.PostalCode, s.Country,
		s.Location.Lat, s.Location.Lng, s.Ranges, s.Phone, s.Email,
		s.Website, s.GoogleMapsURL, s.Services, s.IsActive, s.IsFeatured,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	return translateErr(err)
}

// Delete removes a store by id.
func (r *StoreRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, "DELETE FROM stores WHERE id = $1", id)
	if err != nil {
		return translateErr(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Stats aggregates the active directory: total, counts per range, and the
// ten wilayas with the most stores.
func (r *StoreRepo) Stats(ctx context.Context) (*domain.StoreStats, error) {
	stats := &domain.StoreStats{ByRange: make(map[string]int)}

	if err := r.db.Pool.QueryRow(ctx,
		"SELECT count(*) FROM stores WHERE is_active = TRUE",
	).Scan(&stats.Total); err != nil {
		return nil, translateErr(err)
	}

	rows, err := r.db.Pool.Query(ctx, `
		SELECT r, count(*) FROM stores, unnest(ranges) AS r
		WHERE is_active = TRUE GROUP BY r
	`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		var count int
		if err := rows.Scan(&name, &count); err != nil {
			return nil, translateErr(err)
		}
		stats.ByRange[name] = count
	}
	if err := rows.Err(); err != nil {
		return nil, translateErr(err)
	}

	cityRows, err := r.db.Pool.Query(ctx, `
		SELECT city, count(*) FROM stores
		WHERE is_active = TRUE GROUP BY city
		ORDER BY count(*) DESC, city ASC LIMIT 10
	`)
	if err != nil {
		return nil, translateErr(err)
	}
	defer cityRows.Close()
	for cityRows.Next() {
		var cc domain.CityCount
		if err := cityRows.Scan(&cc.City, &cc.Count); err != nil {
			return nil, translateErr(err)
		}
		stats.TopCities = append(stats.TopCities, cc)
	}
	return stats, translateErr(cityRows.Err())
}
