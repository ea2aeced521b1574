package queue

import "time"

// Config holds the configuration for the task queue
type Config struct {
	PollInterval time.Duration `env:"QUEUE_POLL_INTERVAL" envDefault:"1s"`
	IntentBuffer int           `env:"QUEUE_INTENT_BUFFER" envDefault:"1024"`
}
