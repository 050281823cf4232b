package main

import (
	"testing"

	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/drawscript/spl/pkg/api"
)

func parse(t *testing.T, args ...string) *config {
	c := &config{}
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	c.bind(fs)
	require.NoError(t, fs.Parse(args))
	return c
}

func TestDefaults(t *testing.T) {
	opts := parse(t).runOptions()
	assert.Equal(t, api.DefaultMaxSteps, opts.MaxSteps)
	assert.Equal(t, int64(api.DefaultMaxBodySize), opts.MaxBodySize)
	require.NotNil(t, opts.RateLimiterOpts)
	assert.Equal(t, 10, opts.RateLimiterOpts.MaxRequestsPerSecond)
	assert.Equal(t, 20, opts.RateLimiterOpts.MaxBurst)
	assert.True(t, opts.EnableMetricsRoute)
	assert.False(t, opts.UseRealIPMiddleware)
	assert.Equal(t, api.DefaultResultCacheSize, opts.ResultCacheSize)
}

func TestFlags(t *testing.T) {
	c := parse(t, "--max-steps", "500", "--rate-limit", "0", "--cache-size", "0", "--metrics=false", "--log-requests", "--real-ip", "--log-level", "debug")
	opts := c.runOptions()
	assert.Equal(t, 500, opts.MaxSteps)
	assert.Nil(t, opts.RateLimiterOpts)
	assert.Equal(t, 0, opts.ResultCacheSize)
	assert.False(t, opts.EnableMetricsRoute)
	assert.True(t, opts.LogHttpRequestOpts)
	assert.True(t, opts.UseRealIPMiddleware)
	require.NoError(t, c.logging.Parse())
	assert.Equal(t, zap.DebugLevel, c.logging.Level)
}
