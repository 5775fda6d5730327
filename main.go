package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/labsyspharm/release-tagger/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cmd.Run(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
