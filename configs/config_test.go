package configs_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/products-api/go/configs"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := configs.Load()
	require.NoError(t, err)

	assert.Equal(t, configs.StoreDriverMongo, cfg.Store.Driver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "ProductsDB", cfg.Mongo.Database)
	assert.Equal(t, "products", cfg.Mongo.Collection)
	assert.Equal(t, 20, cfg.Products.ListLimit)
	assert.False(t, cfg.Redis.SSL)
	assert.Equal(t, "", cfg.Redis.KeyPrefix)
	assert.Equal(t, 2*time.Second, cfg.Redis.OpTimeout)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Postgres")
	t.Setenv("REDIS_SSL", "YES")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_OP_TIMEOUT", "250ms")
	t.Setenv("PRODUCTS_LIST_LIMIT", "5")
	t.Setenv("DB_NAME", "catalog")

	cfg, err := configs.Load()
	require.NoError(t, err)

	assert.Equal(t, configs.StoreDriverPostgres, cfg.Store.Driver)
	assert.True(t, cfg.Redis.SSL)
	assert.Equal(t, "6380", cfg.Redis.Port)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.OpTimeout)
	assert.Equal(t, 5, cfg.Products.ListLimit)
	assert.Contains(t, cfg.Database.DSN, "dbname=catalog")
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "cassandra")
	_, err := configs.Load()
	require.Error(t, err)
}

func TestLoad_RejectsNonPositiveListLimit(t *testing.T) {
	t.Setenv("PRODUCTS_LIST_LIMIT", "0")
	_, err := configs.Load()
	require.Error(t, err)
}
