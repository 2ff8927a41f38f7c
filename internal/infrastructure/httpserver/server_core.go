package httpserver

import (
	"time"

	"github.com/avatarctic/products-api/go/internal/core/ports"
	customMiddleware "github.com/avatarctic/products-api/go/internal/infrastructure/httpserver/middleware"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	TLSCertFile  string
	TLSKeyFile   string
	// Upper bound and default for GET /productsapi/products/
	ListLimit int
}

type ServerDeps struct {
	ProductService ports.ProductService
	HealthCheckers []ports.HealthChecker
}

type Server struct {
	echo           *echo.Echo
	config         *ServerConfig
	logger         *logrus.Logger
	productSvc     ports.ProductService
	middleware     *customMiddleware.MiddlewareCollection
	healthCheckers []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()

	if serverConfig.ListLimit <= 0 {
		serverConfig.ListLimit = defaultListLimit
	}

	server := &Server{
		echo:           e,
		config:         serverConfig,
		logger:         logger,
		productSvc:     deps.ProductService,
		healthCheckers: deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}
