package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"github.com/avatarctic/products-api/go/internal/core/ports"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// ProductService resolves products through a cache-aside protocol: reads
// consult the cache before the store and populate it on a miss, writes
// persist to the store and then populate the cache with the stored form.
type ProductService struct {
	repo   ports.ProductRepository
	cache  ports.HashCache
	logger *logrus.Logger

	// coalesces concurrent creates of the same natural key
	creates singleflight.Group
}

func NewProductService(repo ports.ProductRepository, cache ports.HashCache, logger *logrus.Logger) ports.ProductService {
	if logger == nil {
		logger = logrus.New()
	}
	return &ProductService{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

func (s *ProductService) RetrieveProduct(ctx context.Context, id string) (*product.Product, error) {
	if id == "" {
		return nil, product.ErrInvalidIdentifier
	}
	// Hex identifiers are case-insensitive; cache keys use the lowercase form
	// the store returns.
	id = strings.ToLower(id)

	if p, ok := s.fromCache(ctx, id); ok {
		return p, nil
	}

	nativeID, err := product.DecodeID(id)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByID(ctx, nativeID)
	if err != nil {
		return nil, err
	}

	s.populate(ctx, p)
	return p, nil
}

// fromCache returns the cached product for id. Any cache failure, including
// an entry that does not decode, is reported as a miss.
func (s *ProductService) fromCache(ctx context.Context, id string) (*product.Product, bool) {
	if s.cache == nil {
		return nil, false
	}
	fields, ok, err := s.cache.Get(ctx, id)
	if err != nil {
		entry := s.logger.WithFields(logrus.Fields{"id": id}).WithError(err)
		if errors.Is(err, product.ErrCacheDecode) {
			entry.Info("undecodable cache entry, reading from store")
		} else {
			entry.Warn("cache read failed, reading from store")
		}
		return nil, false
	}
	if !ok {
		return nil, false
	}

	p, err := product.FromFields(fields)
	if err != nil {
		s.logger.WithFields(logrus.Fields{"id": id}).WithError(err).Info("undecodable cache entry, reading from store")
		return nil, false
	}
	p.ID = id
	s.logger.WithFields(logrus.Fields{"id": id}).Debug("product served from cache")
	return p, true
}

// populate refreshes the cache entry for p. Failures are logged and
// otherwise ignored.
func (s *ProductService) populate(ctx context.Context, p *product.Product) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Put(ctx, p.ID, p.Fields()); err != nil {
		s.logger.WithFields(logrus.Fields{"id": p.ID}).WithError(err).Warn("failed to populate product cache")
	}
}

// createTimeout bounds a create run that is no longer tied to a caller.
const createTimeout = 15 * time.Second

type createResult struct {
	product *product.Product
	created bool
}

func (s *ProductService) CreateProduct(ctx context.Context, req *product.CreateProductRequest) (*product.Product, bool, error) {
	key := req.Name + "\x00" + req.Country
	ch := s.creates.DoChan(key, func() (any, error) {
		// The shared run serves every waiting caller, so it must not end
		// when the caller that started it goes away.
		runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), createTimeout)
		defer cancel()

		p, created, err := s.create(runCtx, req)
		if err != nil {
			return nil, err
		}
		return createResult{product: p, created: created}, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, false, res.Err
	}

	out, ok := res.Val.(createResult)
	if !ok {
		return nil, false, fmt.Errorf("unexpected type from singleflight result")
	}
	// Callers sharing a coalesced create get their own copy, and none of
	// them is told it performed the insert.
	p := *out.product
	return &p, out.created && !res.Shared, nil
}

func (s *ProductService) create(ctx context.Context, req *product.CreateProductRequest) (*product.Product, bool, error) {
	natural := product.NaturalKey(req.Name, req.Country)

	existing, err := s.repo.FindOne(ctx, natural)
	if err == nil {
		s.logger.WithFields(logrus.Fields{"id": existing.ID, "name": req.Name, "country": req.Country}).Info("product already exists")
		return existing, false, nil
	}
	if !errors.Is(err, product.ErrNotFound) {
		return nil, false, err
	}

	newID, err := s.repo.Insert(ctx, req.ToProduct())
	if errors.Is(err, product.ErrDuplicate) {
		// Another writer inserted the same natural key after our check.
		existing, ferr := s.repo.FindOne(ctx, natural)
		if ferr != nil {
			if errors.Is(ferr, product.ErrNotFound) {
				return nil, false, fmt.Errorf("%w: duplicate reported for %s/%s", product.ErrPostInsertConsistency, req.Name, req.Country)
			}
			return nil, false, ferr
		}
		return existing, false, nil
	}
	if err != nil {
		s.logger.WithFields(logrus.Fields{"name": req.Name, "country": req.Country}).WithError(err).Error("failed to insert product")
		return nil, false, err
	}

	fetched, err := s.repo.FindByID(ctx, newID)
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			s.logger.WithFields(logrus.Fields{"id": newID.Hex()}).Error("inserted product missing on re-fetch")
			return nil, false, fmt.Errorf("%w: %s", product.ErrPostInsertConsistency, newID.Hex())
		}
		return nil, false, err
	}
	fetched.ID = product.EncodeID(newID)

	s.populate(ctx, fetched)
	s.logger.WithFields(logrus.Fields{"id": fetched.ID, "name": fetched.Name, "country": fetched.Country}).Info("product created")
	return fetched, true, nil
}

func (s *ProductService) ListProducts(ctx context.Context, limit int) ([]*product.Product, error) {
	products, err := s.repo.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, product.ErrNotFound
	}
	return products, nil
}
