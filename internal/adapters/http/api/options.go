package api

import "github.com/okian/crease/pkg/logger"

const defaultMaxLookupLimit = 50

type serverConfig struct {
	rps            float64
	burst          int
	maxLookupLimit int
	logger         logger.Logger
}

// Option applies a configuration option to the Server.
type Option func(*serverConfig)

// WithRateLimit limits requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *serverConfig) {
		c.rps = rps
		c.burst = burst
	}
}

// WithMaxLookupLimit caps the limit parameter of /players and /teams.
func WithMaxLookupLimit(n int) Option {
	return func(c *serverConfig) {
		if n > 0 {
			c.maxLookupLimit = n
		}
	}
}

// WithLogger sets the logger used for request logging.
func WithLogger(l logger.Logger) Option {
	return func(c *serverConfig) {
		c.logger = l
	}
}
