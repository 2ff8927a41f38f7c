package mocks

import (
	"context"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductRepositoryMock is a lightweight mock for ProductRepository
type ProductRepositoryMock struct {
	FindByIDFn      func(ctx context.Context, id primitive.ObjectID) (*product.Product, error)
	FindOneFn       func(ctx context.Context, filter product.Filter) (*product.Product, error)
	InsertFn        func(ctx context.Context, p *product.Product) (primitive.ObjectID, error)
	ListFn          func(ctx context.Context, limit int) ([]*product.Product, error)
	EnsureIndexesFn func(ctx context.Context) error
}

func (m *ProductRepositoryMock) FindByID(ctx context.Context, id primitive.ObjectID) (*product.Product, error) {
	if m.FindByIDFn != nil {
		return m.FindByIDFn(ctx, id)
	}
	return nil, product.ErrNotFound
}
func (m *ProductRepositoryMock) FindOne(ctx context.Context, filter product.Filter) (*product.Product, error) {
	if m.FindOneFn != nil {
		return m.FindOneFn(ctx, filter)
	}
	return nil, product.ErrNotFound
}
func (m *ProductRepositoryMock) Insert(ctx context.Context, p *product.Product) (primitive.ObjectID, error) {
	if m.InsertFn != nil {
		return m.InsertFn(ctx, p)
	}
	return product.NewID(), nil
}
func (m *ProductRepositoryMock) List(ctx context.Context, limit int) ([]*product.Product, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, limit)
	}
	return nil, nil
}
func (m *ProductRepositoryMock) EnsureIndexes(ctx context.Context) error {
	if m.EnsureIndexesFn != nil {
		return m.EnsureIndexesFn(ctx)
	}
	return nil
}

// HashCacheMock is a lightweight mock for HashCache
type HashCacheMock struct {
	PutFn    func(ctx context.Context, key string, fields map[string]any) error
	GetFn    func(ctx context.Context, key string) (map[string]any, bool, error)
	DeleteFn func(ctx context.Context, key string, fields ...string) error
}

func (m *HashCacheMock) Put(ctx context.Context, key string, fields map[string]any) error {
	if m.PutFn != nil {
		return m.PutFn(ctx, key, fields)
	}
	return nil
}
func (m *HashCacheMock) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, key)
	}
	return nil, false, nil
}
func (m *HashCacheMock) Delete(ctx context.Context, key string, fields ...string) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, key, fields...)
	}
	return nil
}

// ProductServiceMock is a lightweight mock for ProductService
type ProductServiceMock struct {
	RetrieveProductFn func(ctx context.Context, id string) (*product.Product, error)
	CreateProductFn   func(ctx context.Context, req *product.CreateProductRequest) (*product.Product, bool, error)
	ListProductsFn    func(ctx context.Context, limit int) ([]*product.Product, error)
}

func (m *ProductServiceMock) RetrieveProduct(ctx context.Context, id string) (*product.Product, error) {
	if m.RetrieveProductFn != nil {
		return m.RetrieveProductFn(ctx, id)
	}
	return nil, product.ErrNotFound
}
func (m *ProductServiceMock) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, bool, error) {
	if m.CreateProductFn != nil {
		return m.CreateProductFn(ctx, req)
	}
	return nil, false, nil
}
func (m *ProductServiceMock) ListProducts(ctx context.Context, limit int) ([]*product.Product, error) {
	if m.ListProductsFn != nil {
		return m.ListProductsFn(ctx, limit)
	}
	return nil, product.ErrNotFound
}

// HealthCheckerMock is a lightweight mock for HealthChecker
type HealthCheckerMock struct {
	NameValue string
	CheckFn   func(ctx context.Context) error
}

func (m *HealthCheckerMock) Name() string { return m.NameValue }
func (m *HealthCheckerMock) Check(ctx context.Context) error {
	if m.CheckFn != nil {
		return m.CheckFn(ctx)
	}
	return nil
}
