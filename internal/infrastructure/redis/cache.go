package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"github.com/go-redis/redis/v8"
)

// Coercer converts a raw hash value back to the type declared for field.
type Coercer func(field, raw string) (any, error)

// HashCache implements ports.HashCache on top of Redis hashes. Each entry is a
// flat field map stored under one key.
type HashCache struct {
	r redis.Cmdable
	// optional key prefix to namespace entries
	prefix  string
	timeout time.Duration
	coerce  Coercer
}

// NewHashCache creates a new Redis-backed hash cache. timeout bounds every
// call; a nil coerce leaves all values as strings.
func NewHashCache(r redis.Cmdable, prefix string, timeout time.Duration, coerce Coercer) *HashCache {
	return &HashCache{r: r, prefix: prefix, timeout: timeout, coerce: coerce}
}

func (c *HashCache) namespaced(key string) string {
	if c.prefix == "" {
		return key
	}
	return c.prefix + ":" + key
}

func (c *HashCache) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// Put implements HashCache.Put. The previous entry is dropped so fields
// absent from the new map do not linger.
func (c *HashCache) Put(ctx context.Context, key string, fields map[string]any) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	values := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		values[k] = stringify(v)
	}

	ns := c.namespaced(key)
	_, err := c.r.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, ns)
		if len(values) > 0 {
			pipe.HSet(ctx, ns, values)
		}
		return nil
	})
	if err != nil {
		cacheOperations.WithLabelValues("put", "error").Inc()
		return fmt.Errorf("redis put %s: %w: %w", ns, product.ErrCacheUnavailable, err)
	}
	cacheOperations.WithLabelValues("put", "ok").Inc()
	return nil
}

// Get implements HashCache.Get.
func (c *HashCache) Get(ctx context.Context, key string) (map[string]any, bool, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	ns := c.namespaced(key)
	raw, err := c.r.HGetAll(ctx, ns).Result()
	if errors.Is(err, redis.Nil) {
		raw, err = nil, nil
	}
	if err != nil {
		cacheOperations.WithLabelValues("get", "error").Inc()
		return nil, false, fmt.Errorf("redis get %s: %w: %w", ns, product.ErrCacheUnavailable, err)
	}
	if len(raw) == 0 {
		cacheOperations.WithLabelValues("get", "miss").Inc()
		return nil, false, nil
	}

	out := make(map[string]any, len(raw))
	for field, value := range raw {
		if c.coerce == nil {
			out[field] = value
			continue
		}
		v, err := c.coerce(field, value)
		if err != nil {
			cacheOperations.WithLabelValues("get", "decode_error").Inc()
			return nil, false, err
		}
		out[field] = v
	}
	cacheOperations.WithLabelValues("get", "hit").Inc()
	return out, true, nil
}

// Delete implements HashCache.Delete.
func (c *HashCache) Delete(ctx context.Context, key string, fields ...string) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	ns := c.namespaced(key)
	var err error
	if len(fields) == 0 {
		err = c.r.Del(ctx, ns).Err()
	} else {
		err = c.r.HDel(ctx, ns, fields...).Err()
	}
	if err != nil {
		cacheOperations.WithLabelValues("delete", "error").Inc()
		return fmt.Errorf("redis delete %s: %w: %w", ns, product.ErrCacheUnavailable, err)
	}
	cacheOperations.WithLabelValues("delete", "ok").Inc()
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
