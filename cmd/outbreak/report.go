package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/tinytelemetry/outbreak/internal/logger"
	"github.com/tinytelemetry/outbreak/internal/model"
	"github.com/tinytelemetry/outbreak/internal/report"
)

// runReport collects the worldwide views once and writes the requested files.
func runReport(src model.StatsSource, cfg appConfig, htmlPath, pngPath string) error {
	log := logger.Get().Component("main")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	data, err := report.Collect(ctx, src)
	if err != nil {
		return fmt.Errorf("collecting report data: %w", err)
	}

	if htmlPath != "" {
		if err := writeFile(htmlPath, func(f *os.File) error { return report.WriteHTML(f, data, cfg.Locale) }); err != nil {
			return err
		}
		log.Info().Str("path", htmlPath).Msg("wrote html report")
	}
	if pngPath != "" {
		if err := writeFile(pngPath, func(f *os.File) error { return report.WritePNG(f, data.History) }); err != nil {
			return err
		}
		log.Info().Str("path", pngPath).Msg("wrote png chart")
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
