// Package main runs the scry-match HTTP server, which hosts independent
// memory matching games pairing ML terms with their definitions.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml if present)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath); err != nil {
		log.Printf("scry-match: %v", err)
		stop()
		os.Exit(1)
	}
}
