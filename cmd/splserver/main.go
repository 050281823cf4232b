package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/drawscript/spl/pkg/api"
	"github.com/drawscript/spl/pkg/logging"
)

var version = "v0.0.0"

const (
	defaultTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

type config struct {
	address        string
	prometheus     string
	logging        logging.Parameters
	maxSteps       int
	maxBodySize    int64
	maxConnections int
	cacheSize      int
	rateLimit      int
	burst          int
	metricsRoute   bool
	logRequests    bool
	realIP         bool
}

func (c *config) bind(fs *flag.FlagSet) {
	fs.StringVar(&c.address, "address", "127.0.0.1:8080", "Address to serve the API on")
	fs.StringVar(&c.prometheus, "prometheus", "", "Address of a standalone Prometheus metrics server, disabled if empty")
	c.logging.Initialize(fs)
	fs.IntVar(&c.maxSteps, "max-steps", api.DefaultMaxSteps, "Statements and loop iterations allowed per request")
	fs.Int64Var(&c.maxBodySize, "max-body-size", api.DefaultMaxBodySize, "Largest accepted request body in bytes")
	fs.IntVar(&c.maxConnections, "max-connections", api.DefaultMaxConnections, "Simultaneous connections limit")
	fs.IntVar(&c.cacheSize, "cache-size", api.DefaultResultCacheSize, "Number of program results to cache, 0 disables caching")
	fs.IntVar(&c.rateLimit, "rate-limit", 10, "Requests per second allowed per client, 0 disables rate limiting")
	fs.IntVar(&c.burst, "burst", 20, "Requests allowed above the rate limit in a burst")
	fs.BoolVar(&c.metricsRoute, "metrics", true, "Serve Prometheus metrics on /metrics of the API")
	fs.BoolVar(&c.logRequests, "log-requests", false, "Log every served request")
	fs.BoolVar(&c.realIP, "real-ip", false, "Trust X-Real-IP and X-Forwarded-For headers")
}

func (c *config) runOptions() *api.RunOptions {
	opts := api.DefaultRunOptions()
	opts.MaxSteps = c.maxSteps
	opts.MaxBodySize = c.maxBodySize
	opts.MaxConnections = c.maxConnections
	opts.ResultCacheSize = c.cacheSize
	opts.EnableMetricsRoute = c.metricsRoute
	opts.LogHttpRequestOpts = c.logRequests
	opts.UseRealIPMiddleware = c.realIP
	if c.rateLimit > 0 {
		opts.RateLimiterOpts.MaxRequestsPerSecond = c.rateLimit
		opts.RateLimiterOpts.MaxBurst = c.burst
	} else {
		opts.RateLimiterOpts = nil
	}
	return opts
}

func main() {
	os.Exit(realMain())
}

func realMain() int {
	c := &config{}
	c.bind(flag.CommandLine)
	showVersion := flag.BoolP("version", "v", false, "Print version information and quit")
	flag.Parse()
	if *showVersion {
		fmt.Printf("splserver %s\n", version)
		return 0
	}
	if err := c.logging.Parse(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 2
	}
	logger, _ := logging.SetupLogger(c.logging)
	defer func() {
		_ = logger.Sync()
	}()
	if err := run(c); err != nil {
		zap.S().Errorf("Failed to run server: %v", err)
		return 1
	}
	return 0
}

func run(c *config) (retErr error) {
	eg, ctx := errgroup.WithContext(context.Background())
	defer func() {
		if wErr := eg.Wait(); wErr != nil && !errors.Is(wErr, context.Canceled) {
			retErr = errors.Join(retErr, wErr)
		}
	}()
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	zap.S().Infof("splserver %s", version)
	zap.S().Debugf("Logging parameters: %s", c.logging.String())
	if c.prometheus != "" {
		eg.Go(func() error {
			return runPrometheusMetricsServer(ctx, c.prometheus)
		})
	}
	eg.Go(func() error {
		defer cancel()
		return pkgerrors.Wrap(api.Run(ctx, c.address, api.NewServer(c.runOptions())), "API server failed")
	})
	<-ctx.Done()
	zap.S().Info("Shutting down...")
	return nil
}

func runPrometheusMetricsServer(ctx context.Context, address string) error {
	h := http.NewServeMux()
	h.Handle("/metrics", promhttp.Handler())
	s := &http.Server{
		Addr:              address,
		Handler:           h,
		ReadHeaderTimeout: defaultTimeout,
		ReadTimeout:       defaultTimeout,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil {
			zap.S().Errorf("Failed to shutdown prometheus metrics server: %v", err)
		}
	}()
	zap.S().Infof("Starting prometheus metrics server on %s", address)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return pkgerrors.Wrap(err, "prometheus metrics server failed")
	}
	return nil
}
