package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/tinytelemetry/outbreak/internal/diseaseapi"
	"github.com/tinytelemetry/outbreak/internal/httpserver"
	"github.com/tinytelemetry/outbreak/internal/logger"
	"github.com/tinytelemetry/outbreak/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var showVersion bool
	var serve bool
	var htmlPath string
	var pngPath string

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/outbreak/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.BoolVar(&serve, "serve", false, "run the JSON API in the foreground instead of the dashboard")
	flag.StringVar(&htmlPath, "report", "", "write an HTML report to this file and exit")
	flag.StringVar(&pngPath, "png", "", "write the worldwide history chart as PNG to this file and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Outbreak - COVID-19 Tracker\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// The dashboard owns the terminal, so only the batch modes log to it.
	headless := serve || htmlPath != "" || pngPath != ""
	if err := logger.Init(cfg.LogLevel, cfg.LogFile, headless); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	client := diseaseapi.New(cfg.BaseURL,
		diseaseapi.WithMetrics(diseaseapi.NewMetrics(reg)),
		diseaseapi.WithLogger(logger.Get().Component("diseaseapi")),
	)

	switch {
	case htmlPath != "" || pngPath != "":
		err = runReport(client, cfg, htmlPath, pngPath)
	case serve:
		err = runServer(httpserver.NewServer(cfg.APIAddr, client, reg))
	default:
		err = runTUI(cfg, client, reg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg appConfig, client *diseaseapi.Client, reg *prometheus.Registry) error {
	log := logger.Get().Component("main")

	skin, err := tui.LoadSkin(cfg.Skin, cfg.ConfigDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to load skin '%s': %v (using default)\n", cfg.Skin, err)
	}

	if cfg.APIEnabled {
		apiServer := httpserver.NewServer(cfg.APIAddr, client, reg)
		if err := apiServer.Start(); err != nil {
			return fmt.Errorf("failed to start API server: %w", err)
		}
		defer apiServer.Stop()
	}

	dashboard := tui.NewDashboardModel(client, tui.Config{
		Locale:             cfg.Locale,
		Theme:              cfg.Theme,
		Skin:               skin,
		ReverseScrollWheel: cfg.ReverseScrollWheel,
	})
	app := tui.NewApp(tui.NewDashboardPage(dashboard))
	defer app.Close()

	log.Info().Str("base_url", cfg.BaseURL).Msg("starting dashboard")

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
