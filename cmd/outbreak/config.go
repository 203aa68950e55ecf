package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tinytelemetry/outbreak/internal/model"
)

const (
	defaultSkin     = "default"
	defaultLogLevel = "info"
	defaultAPIAddr  = "127.0.0.1:3000"
)

// appConfig is the runtime configuration, read from the config file and
// OUTBREAK_* environment variables.
type appConfig struct {
	BaseURL            string `mapstructure:"base-url"`
	Locale             string `mapstructure:"locale"`
	Theme              string `mapstructure:"theme"`
	Skin               string `mapstructure:"skin"`
	ReverseScrollWheel bool   `mapstructure:"reverse-scroll-wheel"`
	LogLevel           string `mapstructure:"log-level"`
	LogFile            string `mapstructure:"log-file"`
	APIEnabled         bool   `mapstructure:"api-enabled"`
	APIAddr            string `mapstructure:"api-addr"`
	ConfigDir          string `mapstructure:"-"`
}

func configDir(home string) string {
	return filepath.Join(home, ".config", "outbreak")
}

func loadConfig(configPath string) (appConfig, error) {
	var cfg appConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("OUTBREAK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("base-url", model.DefaultBaseURL)
	v.SetDefault("locale", model.DefaultLocale)
	v.SetDefault("theme", model.DefaultTheme)
	v.SetDefault("skin", defaultSkin)
	v.SetDefault("reverse-scroll-wheel", false)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-file", filepath.Join(configDir(home), "outbreak.log"))
	v.SetDefault("api-enabled", false)
	v.SetDefault("api-addr", defaultAPIAddr)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(configDir(home), "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}

	switch cfg.Theme {
	case "auto", "dark", "light":
	default:
		return cfg, fmt.Errorf("invalid theme %q: want auto, dark or light", cfg.Theme)
	}

	cfg.ConfigDir = configDir(home)
	if configPath != "" {
		cfg.ConfigDir = filepath.Dir(configPath)
	}
	return cfg, nil
}
