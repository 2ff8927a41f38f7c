package redis

import "github.com/prometheus/client_golang/prometheus"

var cacheOperations = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "product_cache_operations_total",
		Help: "Cache operations by operation and result",
	},
	[]string{"operation", "result"},
)

func init() {
	prometheus.MustRegister(cacheOperations)
}

// GetCacheOperations returns the cache operations counter
func GetCacheOperations() *prometheus.CounterVec {
	return cacheOperations
}
