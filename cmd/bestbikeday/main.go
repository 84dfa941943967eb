// SPDX-FileCopyrightText: Winni Neessen <wn@neessen.dev>
//
// SPDX-License-Identifier: MIT

//go:build linux

// Package main implements the bestbikeday command.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/wneessen/bestbikeday/internal/api"
	"github.com/wneessen/bestbikeday/internal/config"
	"github.com/wneessen/bestbikeday/internal/i18n"
	"github.com/wneessen/bestbikeday/internal/logger"
	"github.com/wneessen/bestbikeday/internal/service"
)

const shutdownTimeout = 10 * time.Second

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGABRT, os.Interrupt)
	defer cancel()

	// Initialize Logger
	log := logger.New(slog.LevelError)

	confPath := flag.String("config", "", "path to the config file")
	cityName := flag.String("city", "", "city to rate, overrides the configured location")
	serve := flag.Bool("serve", false, "run as a daemon and serve the HTTP API")
	flag.Parse()

	conf, err := loadConfig(*confPath)
	if err != nil {
		log.Error("failed to load config", logger.Err(err))
		os.Exit(1)
	}
	if *cityName != "" {
		conf.Location.City = *cityName
		conf.Location.Latitude, conf.Location.Longitude = 0, 0
	}

	log = logger.New(conf.LogLevel)
	t, err := i18n.New(conf.Locale)
	if err != nil {
		log.Error("failed to initialize localizer", logger.Err(err))
		os.Exit(1)
	}

	serv, err := service.New(conf, log, t)
	if err != nil {
		log.Error("failed to initialize bestbikeday service", logger.Err(err))
		os.Exit(1)
	}

	if !*serve {
		if err = serv.RunOnce(ctx); err != nil {
			log.Error("failed to rate forecast", logger.Err(err))
			os.Exit(1)
		}
		return
	}

	app := api.New(serv, log, conf.ForecastDays())
	go func() {
		log.Info("serving HTTP API", slog.String("listen", conf.Server.Listen))
		if err := app.Listen(conf.Server.Listen); err != nil {
			log.Error("HTTP server stopped", logger.Err(err))
			cancel()
		}
	}()

	log.Info("starting bestbikeday service", slog.String("version", version),
		slog.String("commit", commit), slog.String("date", date))
	if err = serv.Run(ctx); err != nil {
		log.Error("failed to start bestbikeday service", logger.Err(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err = app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("failed to shut down HTTP server", logger.Err(err))
	}
	log.Info("shutting down bestbikeday service")
}

// loadConfig reads the configuration from confPath, the default config file location or the
// environment, in that order.
func loadConfig(confPath string) (*config.Config, error) {
	if confPath != "" {
		return config.NewFromFile(filepath.Dir(confPath), filepath.Base(confPath))
	}
	if path, file := findConfigFile(); path != "" && file != "" {
		return config.NewFromFile(path, file)
	}
	return config.New()
}

func findConfigFile() (string, string) {
	homedir, err := os.UserHomeDir()
	if err != nil {
		return "", ""
	}
	exts := []string{"toml", "yaml", "yml", "json"}
	for _, ext := range exts {
		path := filepath.Join(homedir, ".config", "bestbikeday", "config."+ext)
		if _, err = os.Stat(path); err == nil {
			return filepath.Dir(path), filepath.Base(path)
		}
	}
	return "", ""
}
