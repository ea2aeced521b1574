package api

import "time"

type Config struct {
	SubmitTimeout time.Duration `env:"API_SUBMIT_TIMEOUT" envDefault:"2s"` // SubmitTimeout bounds how long a submission waits for room in the intent channel.
	CORSOrigins   []string      `env:"API_CORS_ORIGINS" envSeparator:","`  // CORSOrigins lists browser origins allowed to call the API; empty disables CORS.
	CORSMaxAge    time.Duration `env:"API_CORS_MAX_AGE" envDefault:"10m"`  // CORSMaxAge is how long browsers may cache a preflight answer.
}
