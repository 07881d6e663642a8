package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/axiome/firstprinciples/internal/cli"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code; 130 follows the shell convention
// for a command interrupted by SIGINT.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	c := cli.New(os.Stderr, cli.LogInfo)
	err := c.RootCommand().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		return 130
	default:
		c.Logger.Error(err)
		return 1
	}
}
