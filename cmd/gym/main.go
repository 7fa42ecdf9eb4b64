package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app, cleanup, err := NewApp(os.Stdout)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer cleanup()

	return app.Run(ctx, os.Args[1:])
}
