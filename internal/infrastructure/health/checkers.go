package health

import (
	"context"

	"github.com/avatarctic/products-api/go/internal/core/ports"
	infraDB "github.com/avatarctic/products-api/go/internal/infrastructure/db"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type mongoHealthChecker struct{ client *mongo.Client }

func (m *mongoHealthChecker) Name() string { return "mongodb" }
func (m *mongoHealthChecker) Check(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

// dbHealthChecker wraps the database for health checks.
type dbHealthChecker struct{ db *infraDB.Database }

func (d *dbHealthChecker) Name() string                    { return "database" }
func (d *dbHealthChecker) Check(ctx context.Context) error { return d.db.DB.PingContext(ctx) }

type redisHealthChecker struct{ client redis.Cmdable }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewMongoHealthChecker creates a health checker for the MongoDB deployment.
func NewMongoHealthChecker(client *mongo.Client) ports.HealthChecker {
	return &mongoHealthChecker{client: client}
}

// NewDBHealthChecker creates a health checker for the database.
func NewDBHealthChecker(db *infraDB.Database) ports.HealthChecker { return &dbHealthChecker{db: db} }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client redis.Cmdable) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}
