package tasks

import (
	"net/http"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

// Task variant identifiers. They are persisted, so renaming one orphans stored records.
const (
	Sleep  queue.Variant = "sleep"
	Fetch  queue.Variant = "fetch"
	Random queue.Variant = "random"
)

// Option tweaks how the handlers are built.
type Option func(*options)

type options struct {
	client *http.Client
	intn   func(n int) int
}

// WithHTTPClient sets the client used by the fetch task.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithIntN replaces the random source of the random task.
func WithIntN(fn func(n int) int) Option {
	return func(o *options) {
		if fn != nil {
			o.intn = fn
		}
	}
}

// NewRegistry returns the closed registry of every task variant this service runs.
func NewRegistry(cfg Config, opts ...Option) (*queue.Registry, error) {
	o := &options{
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(o)
	}

	fetch, err := NewFetchHandler(o.client, cfg.FetchURL)
	if err != nil {
		return nil, err
	}

	random, err := NewRandomHandler(cfg.RandomBound, o.intn)
	if err != nil {
		return nil, err
	}

	return queue.NewRegistry(
		NewSleepHandler(cfg.SleepDuration),
		fetch,
		random,
	)
}
