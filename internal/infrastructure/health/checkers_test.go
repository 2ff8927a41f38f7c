package health_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/products-api/go/internal/infrastructure/db"
	"github.com/avatarctic/products-api/go/internal/infrastructure/health"
)

func TestRedisHealthChecker(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	hc := health.NewRedisHealthChecker(client)
	assert.Equal(t, "redis", hc.Name())
	require.NoError(t, hc.Check(context.Background()))

	mr.Close()
	assert.Error(t, hc.Check(context.Background()))
}

func TestDBHealthChecker(t *testing.T) {
	mockDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mockDB.Close()

	hc := health.NewDBHealthChecker(&db.Database{DB: sqlx.NewDb(mockDB, "postgres")})
	assert.Equal(t, "database", hc.Name())

	mock.ExpectPing()
	require.NoError(t, hc.Check(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
