package product

import "errors"

var (
	ErrInvalidIdentifier     = errors.New("invalid ObjectID format")
	ErrNotFound              = errors.New("product not found")
	ErrDuplicate             = errors.New("product already exists")
	ErrStoreUnavailable      = errors.New("product store unavailable")
	ErrInsertNotAcknowledged = errors.New("product not created")
	ErrPostInsertConsistency = errors.New("product not found after insertion")
	ErrCacheUnavailable      = errors.New("product cache unavailable")
	ErrCacheDecode           = errors.New("undecodable cache entry")
)
