package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"github.com/avatarctic/products-api/go/internal/core/ports"
	"github.com/avatarctic/products-api/go/internal/infrastructure/db"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	productColumns    = "id, name, country, price, description, stock"
	pqUniqueViolation = "23505"
)

// PostgresProductRepository implements the product repository on PostgreSQL
type PostgresProductRepository struct {
	db     *db.Database
	logger *logrus.Logger
}

// NewPostgresProductRepository creates a new PostgreSQL product repository
func NewPostgresProductRepository(database *db.Database, logger *logrus.Logger) ports.ProductRepository {
	return &PostgresProductRepository{
		db:     database,
		logger: logger,
	}
}

// FindByID retrieves a product by its ObjectID
func (r *PostgresProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.get(ctx, query, product.EncodeID(id))
}

// FindOne retrieves the first product matching an equality filter
func (r *PostgresProductRepository) FindOne(ctx context.Context, filter product.Filter) (*product.Product, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	keys := filter.Keys()
	conds := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for i, k := range keys {
		v := filter[k]
		if k == product.FieldID {
			s, _ := v.(string)
			if _, err := product.DecodeID(s); err != nil {
				return nil, err
			}
		}
		// Column names come from the declared field schema, never from input.
		conds = append(conds, fmt.Sprintf("%s = $%d", k, i+1))
		args = append(args, v)
	}

	query := `SELECT ` + productColumns + ` FROM products`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at, id LIMIT 1`
	return r.get(ctx, query, args...)
}

func (r *PostgresProductRepository) get(ctx context.Context, query string, args ...any) (*product.Product, error) {
	var p product.Product
	if err := r.db.DB.GetContext(ctx, &p, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w: %w", product.ErrStoreUnavailable, err)
	}
	return &p, nil
}

// Insert stores a new product under a freshly allocated ObjectID
func (r *PostgresProductRepository) Insert(ctx context.Context, p *product.Product) (primitive.ObjectID, error) {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`

	id := product.NewID()
	res, err := r.db.DB.ExecContext(ctx, query,
		product.EncodeID(id), p.Name, p.Country, p.Price, p.Description, p.Stock)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return primitive.NilObjectID, product.ErrDuplicate
		}
		return primitive.NilObjectID, fmt.Errorf("failed to insert product: %w: %w", product.ErrStoreUnavailable, err)
	}

	rows, err := res.RowsAffected()
	if err != nil || rows != 1 {
		return primitive.NilObjectID, fmt.Errorf("%w: %d rows affected", product.ErrInsertNotAcknowledged, rows)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"id": id.Hex(), "name": p.Name, "country": p.Country}).Debug("product inserted")
	}
	return id, nil
}

// List returns up to limit products in insertion order
func (r *PostgresProductRepository) List(ctx context.Context, limit int) ([]*product.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at, id LIMIT $1`

	var products []*product.Product
	if err := r.db.DB.SelectContext(ctx, &products, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list products: %w: %w", product.ErrStoreUnavailable, err)
	}
	return products, nil
}

// EnsureIndexes creates the unique natural-key index on (name, country) if
// migrations have not already done so.
func (r *PostgresProductRepository) EnsureIndexes(ctx context.Context) error {
	query := `CREATE UNIQUE INDEX IF NOT EXISTS products_name_country_key ON products (name, country)`
	if _, err := r.db.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}
