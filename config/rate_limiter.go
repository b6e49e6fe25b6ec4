package config

import "time"

// RateLimitConfig configures the per-client request limiter mounted on /api
type RateLimitConfig struct {
	Rate     int           `env:"RATE_LIMIT_RATE" envDefault:"6000"`    // Tokens refilled per interval, in-memory limiter only
	Burst    int           `env:"RATE_LIMIT_BURST" envDefault:"600"`    // Bucket capacity
	Interval time.Duration `env:"RATE_LIMIT_INTERVAL" envDefault:"1m"` // Refill interval
}

var DefaultRateLimitConfig = RateLimitConfig{
	Rate:     6000,
	Burst:    600,
	Interval: time.Minute,
}
