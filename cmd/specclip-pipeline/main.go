// cmd/specclip-pipeline/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"specclip/internal/pipelineapp"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	code := pipelineapp.RunContext(ctx, os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(code)
}
