package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

// NewFetchHandler returns the network task: a GET against url whose detail is
// the response status line, e.g. "200 OK". Any status counts as success.
func NewFetchHandler(client *http.Client, url string) (queue.Handler, error) {
	if url == "" {
		return nil, ErrEmptyFetchURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return queue.NewHandler(Fetch, func(ctx context.Context, id int64) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", errors.Join(ErrFetchFailed, err)
		}

		resp, err := client.Do(req)
		if err != nil {
			return "", errors.Join(ErrFetchFailed, err)
		}
		defer resp.Body.Close()

		// drain so the connection can be reused
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return "", errors.Join(ErrFetchFailed, fmt.Errorf("read body: %w", err))
		}

		return resp.Status, nil
	}), nil
}
