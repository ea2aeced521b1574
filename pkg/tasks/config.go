package tasks

import "time"

type Config struct {
	SleepDuration time.Duration `env:"TASKS_SLEEP_DURATION" envDefault:"3s"`              // SleepDuration is how long the sleep task waits.
	FetchURL      string        `env:"TASKS_FETCH_URL" envDefault:"https://example.com/"` // FetchURL is the address the fetch task requests.
	RandomBound   int           `env:"TASKS_RANDOM_BOUND" envDefault:"344"`               // RandomBound is the exclusive upper bound of the random task.
}
