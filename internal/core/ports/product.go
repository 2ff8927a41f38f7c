package ports

import (
	"context"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepository defines the interface for product document store
// operations. Absent records are reported as product.ErrNotFound.
type ProductRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*product.Product, error)
	FindOne(ctx context.Context, filter product.Filter) (*product.Product, error)
	Insert(ctx context.Context, p *product.Product) (primitive.ObjectID, error)
	List(ctx context.Context, limit int) ([]*product.Product, error)
	EnsureIndexes(ctx context.Context) error
}

// ProductService defines the interface for product business logic
type ProductService interface {
	// RetrieveProduct reads through the cache, falling back to the store.
	RetrieveProduct(ctx context.Context, id string) (*product.Product, error)
	// CreateProduct returns the existing product for the request's natural
	// key, or inserts a new one. created reports whether an insert happened.
	CreateProduct(ctx context.Context, req *product.CreateProductRequest) (p *product.Product, created bool, err error)
	ListProducts(ctx context.Context, limit int) ([]*product.Product, error)
}
