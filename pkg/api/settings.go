package api

import (
	"net/http"

	"go.uber.org/zap"
)

const (
	DefaultMaxConnections         = 128
	DefaultRateLimiterStorageSize = 64 * 1024 // 64 KB
	DefaultMaxSteps               = 100_000
	DefaultMaxBodySize            = 1 << 20
	MaxCanvasSide                 = 10_000
	DefaultResultCacheSize        = 256
)

type RunOptions struct {
	RateLimiterOpts      *RateLimiterOptions
	LogHttpRequestOpts   bool
	CollectMetrics       bool
	UseRealIPMiddleware  bool
	EnableHeartbeatRoute bool
	EnableMetricsRoute   bool
	RouteNotFoundHandler func(w http.ResponseWriter, r *http.Request)
	MaxConnections       int
	// MaxSteps bounds statements and loop iterations per request.
	MaxSteps    int
	MaxBodySize int64
	// ResultCacheSize is the number of /run results kept for identical
	// requests. Zero disables caching.
	ResultCacheSize int
}

type RateLimiterOptions struct {
	MemoryCacheSize      int
	MaxRequestsPerSecond int
	MaxBurst             int
}

func DefaultRunOptions() *RunOptions {
	return &RunOptions{
		RateLimiterOpts: &RateLimiterOptions{
			MemoryCacheSize:      DefaultRateLimiterStorageSize,
			MaxRequestsPerSecond: 10,
			MaxBurst:             20,
		},
		LogHttpRequestOpts:   false,
		EnableHeartbeatRoute: true,
		EnableMetricsRoute:   true,
		UseRealIPMiddleware:  true,
		CollectMetrics:       true,
		RouteNotFoundHandler: func(w http.ResponseWriter, r *http.Request) {
			zap.S().Debugf("Route not found: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		},
		MaxConnections: DefaultMaxConnections,
		MaxSteps:       DefaultMaxSteps,
		MaxBodySize:    DefaultMaxBodySize,

		ResultCacheSize: DefaultResultCacheSize,
	}
}
