package tasks

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/dmitrymomot/eventqueue/pkg/queue"
)

// NewRandomHandler returns the task that draws a number in [0, bound).
// A nil intn uses math/rand/v2.
func NewRandomHandler(bound int, intn func(n int) int) (queue.Handler, error) {
	if bound <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRandomBound, bound)
	}
	if intn == nil {
		intn = rand.IntN
	}

	return queue.NewHandler(Random, func(ctx context.Context, id int64) (string, error) {
		return strconv.Itoa(intn(bound)), nil
	}), nil
}
