package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tinytelemetry/outbreak/internal/httpserver"
	"github.com/tinytelemetry/outbreak/internal/logger"
)

// runServer serves the JSON API until SIGINT or SIGTERM.
func runServer(srv *httpserver.Server) error {
	log := logger.Get().Component("main")

	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start API server: %w", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	fmt.Printf("Outbreak API listening on http://%s (Ctrl+C to stop)\n", srv.Addr())
	sig := <-sigCh
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	if err := srv.Stop(); err != nil {
		return fmt.Errorf("shutting down API server: %w", err)
	}
	return nil
}
