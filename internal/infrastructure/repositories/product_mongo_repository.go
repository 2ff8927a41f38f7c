package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"github.com/avatarctic/products-api/go/internal/core/ports"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const naturalKeyIndexName = "name_country_unique"

// productDocument is the stored shape of a product.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Country     string             `bson:"country"`
	Price       int64              `bson:"price"`
	Description string             `bson:"description,omitempty"`
	Stock       int64              `bson:"stock,omitempty"`
}

func (d *productDocument) toProduct() *product.Product {
	return &product.Product{
		ID:          product.EncodeID(d.ID),
		Name:        d.Name,
		Country:     d.Country,
		Price:       d.Price,
		Description: d.Description,
		Stock:       d.Stock,
	}
}

// MongoProductRepository implements the product repository on a MongoDB collection
type MongoProductRepository struct {
	coll   *mongo.Collection
	logger *logrus.Logger
}

// NewMongoProductRepository creates a new MongoDB product repository
func NewMongoProductRepository(coll *mongo.Collection, logger *logrus.Logger) ports.ProductRepository {
	return &MongoProductRepository{
		coll:   coll,
		logger: logger,
	}
}

// FindByID retrieves a product by its ObjectID
func (r *MongoProductRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*product.Product, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindOne retrieves the first product matching an equality filter
func (r *MongoProductRepository) FindOne(ctx context.Context, filter product.Filter) (*product.Product, error) {
	q, err := toBSONFilter(filter)
	if err != nil {
		return nil, err
	}
	return r.findOne(ctx, q)
}

func (r *MongoProductRepository) findOne(ctx context.Context, q bson.M) (*product.Product, error) {
	var doc productDocument
	err := r.coll.FindOne(ctx, q).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w: %w", product.ErrStoreUnavailable, err)
	}
	return doc.toProduct(), nil
}

// Insert stores a new product under a freshly allocated ObjectID
func (r *MongoProductRepository) Insert(ctx context.Context, p *product.Product) (primitive.ObjectID, error) {
	doc := productDocument{
		ID:          product.NewID(),
		Name:        p.Name,
		Country:     p.Country,
		Price:       p.Price,
		Description: p.Description,
		Stock:       p.Stock,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		switch {
		case mongo.IsDuplicateKeyError(err):
			return primitive.NilObjectID, product.ErrDuplicate
		case errors.Is(err, mongo.ErrUnacknowledgedWrite):
			return primitive.NilObjectID, product.ErrInsertNotAcknowledged
		default:
			return primitive.NilObjectID, fmt.Errorf("failed to insert product: %w: %w", product.ErrStoreUnavailable, err)
		}
	}

	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("%w: unexpected inserted id %v", product.ErrInsertNotAcknowledged, res.InsertedID)
	}
	if r.logger != nil {
		r.logger.WithFields(logrus.Fields{"id": id.Hex(), "name": p.Name, "country": p.Country}).Debug("product inserted")
	}
	return id, nil
}

// List returns up to limit products in natural order
func (r *MongoProductRepository) List(ctx context.Context, limit int) ([]*product.Product, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w: %w", product.ErrStoreUnavailable, err)
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w: %w", product.ErrStoreUnavailable, err)
	}

	products := make([]*product.Product, 0, len(docs))
	for i := range docs {
		products = append(products, docs[i].toProduct())
	}
	return products, nil
}

// EnsureIndexes creates the unique natural-key index on (name, country)
func (r *MongoProductRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: product.FieldName, Value: 1},
			{Key: product.FieldCountry, Value: 1},
		},
		Options: options.Index().SetUnique(true).SetName(naturalKeyIndexName),
	})
	if err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}
	return nil
}

func toBSONFilter(filter product.Filter) (bson.M, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	q := bson.M{}
	for k, v := range filter {
		if k != product.FieldID {
			q[k] = v
			continue
		}
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: id filter must be a string", product.ErrInvalidIdentifier)
		}
		id, err := product.DecodeID(s)
		if err != nil {
			return nil, err
		}
		q["_id"] = id
	}
	return q, nil
}
