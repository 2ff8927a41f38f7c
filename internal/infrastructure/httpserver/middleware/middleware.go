package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// MiddlewareCollection holds the application's own middleware. echo's
// built-in middleware is installed directly by the server.
type MiddlewareCollection struct {
	Logging *LoggingMiddleware
	Metrics *MetricsMiddleware
}

func NewMiddlewareCollection(
	logger *logrus.Logger,
	requestsTotal *prometheus.CounterVec,
	requestDuration *prometheus.HistogramVec,
) *MiddlewareCollection {
	return &MiddlewareCollection{
		Logging: NewLoggingMiddleware(logger),
		Metrics: NewMetricsMiddleware(requestsTotal, requestDuration),
	}
}
