package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/my4ng/pugio/internal/cli"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130) // standard shell convention for SIGINT
		}
		os.Exit(1)
	}
}
