package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, nil, nil); err != nil {
		fmt.Fprintf(os.Stderr, "eventqueue: %v\n", err)
		stop()
		os.Exit(1)
	}
}
