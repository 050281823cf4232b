package api

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/throttled/throttled/v2"
	"github.com/throttled/throttled/v2/store/memstore"

	apiErrs "github.com/drawscript/spl/pkg/api/errors"
)

// createRateLimiter limits requests per remote address. Denied requests get
// a JSON TooManyRequests error.
func createRateLimiter(opts *RateLimiterOptions, errHandler HandleErrorFunc) (throttled.HTTPRateLimiter, error) {
	store, err := memstore.New(opts.MemoryCacheSize)
	if err != nil {
		return throttled.HTTPRateLimiter{},
			errors.Wrapf(err, "createRateLimiter: failed to create memstore with capacity %d", opts.MemoryCacheSize)
	}

	quota := throttled.RateQuota{
		MaxRate:  throttled.PerSec(opts.MaxRequestsPerSecond),
		MaxBurst: opts.MaxBurst,
	}

	rateLimiter, err := throttled.NewGCRARateLimiter(store, quota)
	if err != nil {
		return throttled.HTTPRateLimiter{},
			errors.Wrap(err, "createRateLimiter: can't create rate limiter")
	}

	return throttled.HTTPRateLimiter{
		RateLimiter: rateLimiter,
		VaryBy: &throttled.VaryBy{
			RemoteAddr: true,
		},
		DeniedHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			errHandler(w, r, apiErrs.TooManyRequests)
		}),
	}, nil
}
