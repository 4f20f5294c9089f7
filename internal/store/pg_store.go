package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	perrors "github.com/nostruffes/catalog/internal/errors"
)

const productColumns = `id, name, description, price, image_url, object_model_data, type, category, stripe_product_id, created_at, updated_at`

// PgStore implements ProductStore using PostgreSQL as the data store.
type PgStore struct {
	db *pgxpool.Pool
}

// NewPgStore creates a new instance of ProductStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{db: dbp}
}

// FindByID retrieves a product by its unique identifier.
// Returns ErrProductNotFound if no product exists with the given ID.
func (p *PgStore) FindByID(ctx context.Context, id int64) (*Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	product, err := scanProduct(p.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return product, nil
}

// FindAll retrieves all available products, newest first.
// It returns a slice of products, which may be empty if no products exist.
func (p *PgStore) FindAll(ctx context.Context) ([]Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products ORDER BY created_at DESC, id DESC`, productColumns)
	rows, err := p.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to find all products: %w", err)
	}
	return collectProducts(rows)
}

// FindPage retrieves the products matching the filter, sorted and windowed.
func (p *PgStore) FindPage(ctx context.Context, filter ProductFilter, sort Sort, offset, limit int32) ([]Product, error) {
	where, args := buildWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		productColumns, where, orderBy(sort), len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := p.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find product page: %w", err)
	}
	return collectProducts(rows)
}

// Count returns the number of products matching the filter.
func (p *PgStore) Count(ctx context.Context, filter ProductFilter) (int64, error) {
	where, args := buildWhere(filter)
	query := `SELECT COUNT(*) FROM products` + where

	var count int64
	if err := p.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// Create adds a new product to the system.
// Returns an error if the product cannot be created.
func (p *PgStore) Create(ctx context.Context, params CreateParams) (*Product, error) {
	query := fmt.Sprintf(`
		INSERT INTO products (name, description, price, image_url, object_model_data, type, category, stripe_product_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s`, productColumns)

	product, err := scanProduct(p.db.QueryRow(ctx, query,
		params.Name,
		params.Description,
		params.Price,
		params.ImageURL,
		params.ObjectModelData,
		params.Type,
		params.Category,
		params.StripeProductID,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return product, nil
}

// buildWhere renders the filter as a WHERE clause with positional arguments.
// An empty filter yields an empty clause.
func buildWhere(filter ProductFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(category)", len(args)))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		conditions = append(conditions, fmt.Sprintf("lower(type) = lower($%d)", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// orderBy maps the sort to a column expression. The field set is closed, so
// the mapping is safe to interpolate.
func orderBy(sort Sort) string {
	var column string
	switch sort.Field {
	case SortFieldName:
		column = "name"
	case SortFieldPrice:
		column = "price"
	case SortFieldUpdatedAt:
		column = "updated_at"
	default:
		column = "created_at"
	}
	// id is a tie-break so pages stay stable across requests.
	if sort.Desc {
		return column + " DESC, id DESC"
	}
	return column + " ASC, id ASC"
}

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.ImageURL,
		&p.ObjectModelData,
		&p.Type,
		&p.Category,
		&p.StripeProductID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	defer rows.Close()

	products := make([]Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product row: %w", err)
		}
		products = append(products, *product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read product rows: %w", err)
	}
	return products, nil
}
