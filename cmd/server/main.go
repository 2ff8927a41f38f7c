package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/avatarctic/products-api/go/configs"
	"github.com/avatarctic/products-api/go/internal/application/services"
	"github.com/avatarctic/products-api/go/internal/core/domain/product"
	"github.com/avatarctic/products-api/go/internal/core/ports"
	"github.com/avatarctic/products-api/go/internal/infrastructure/db"
	"github.com/avatarctic/products-api/go/internal/infrastructure/health"
	"github.com/avatarctic/products-api/go/internal/infrastructure/httpserver"
	"github.com/avatarctic/products-api/go/internal/infrastructure/mongodb"
	"github.com/avatarctic/products-api/go/internal/infrastructure/redis"
	"github.com/avatarctic/products-api/go/internal/infrastructure/repositories"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger := newLogger(cfg.Log)
	logger.WithField("store", cfg.Store.Driver).Info("Starting Products API...")

	repo, storeChecker, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize product store: ", err)
	}
	defer closeStore()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repo.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.Fatal("Failed to ensure product indexes: ", err)
	}
	cancel()

	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis: ", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	cache := redis.NewHashCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.OpTimeout, product.Coerce)
	productService := services.NewProductService(repo, cache, logger)

	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
		ListLimit:    cfg.Products.ListLimit,
	}

	server := httpserver.NewServer(serverConfig, logger, httpserver.ServerDeps{
		ProductService: productService,
		HealthCheckers: []ports.HealthChecker{storeChecker, health.NewRedisHealthChecker(redisClient)},
	})

	go func() {
		if err := server.Start(); err != nil {
			logger.Info("Server stopped: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: ", err)
	}

	logger.Info("Server exited")
}

func newLogger(cfg config.LogConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// openStore connects the configured document store and returns its
// repository, health probe and a release func.
func openStore(cfg *config.Config, logger *logrus.Logger) (ports.ProductRepository, ports.HealthChecker, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		database, err := db.NewDatabaseWithConfig(&cfg.Database)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.Migrate(cfg.Database.MigrationsPath); err != nil {
			_ = database.Close()
			return nil, nil, nil, err
		}
		logger.Info("Connected to PostgreSQL successfully")
		closeFn := func() { _ = database.Close() }
		return repositories.NewPostgresProductRepository(database, logger), health.NewDBHealthChecker(database), closeFn, nil

	default:
		client, err := mongodb.NewMongoClient(&cfg.Mongo)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.WithField("database", cfg.Mongo.Database).Info("Connected to MongoDB successfully")
		closeFn := func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(ctx)
		}
		coll := client.Database(cfg.Mongo.Database).Collection(cfg.Mongo.Collection)
		return repositories.NewMongoProductRepository(coll, logger), health.NewMongoHealthChecker(client), closeFn, nil
	}
}
