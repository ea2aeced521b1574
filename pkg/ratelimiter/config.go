package ratelimiter

import "time"

// Config defines the token bucket shared by every key.
type Config struct {
	Capacity       int           `env:"API_SUBMIT_RATE_BURST" envDefault:"0"`     // Capacity is the burst size per client; 0 disables limiting.
	RefillRate     int           `env:"API_SUBMIT_RATE_REFILL" envDefault:"10"`   // RefillRate is the number of tokens added per interval.
	RefillInterval time.Duration `env:"API_SUBMIT_RATE_INTERVAL" envDefault:"1s"` // RefillInterval is how often tokens are added.
}

// Enabled reports whether cfg asks for rate limiting at all.
func (c Config) Enabled() bool {
	return c.Capacity > 0
}

func (c Config) validate() error {
	switch {
	case c.Capacity <= 0:
		return errInvalid("capacity must be positive, got %d", c.Capacity)
	case c.RefillRate <= 0:
		return errInvalid("refill rate must be positive, got %d", c.RefillRate)
	case c.RefillInterval <= 0:
		return errInvalid("refill interval must be positive, got %v", c.RefillInterval)
	}
	return nil
}
