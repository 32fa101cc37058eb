// Command lumen serves the Lumen Home storefront page in the terminal.
//
// Usage:
//
//	lumen                  interactive storefront
//	lumen run session.js   scripted session (JavaScript on an event loop)
//
// Configuration is read from $LUMEN_CONFIG or ~/.lumen/config; see the
// config package for the file format.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/lumenhome/lumen/internal/applog"
	"github.com/lumenhome/lumen/internal/config"
	"github.com/lumenhome/lumen/internal/script"
	"github.com/lumenhome/lumen/internal/storefront"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	fs := flag.NewFlagSet("lumen", flag.ExitOnError)
	configPath := fs.String("config", "", "config file path (default $LUMEN_CONFIG or ~/.lumen/config)")
	showVersion := fs.Bool("version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: lumen [options] [run <script.js>]")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(os.Args[1:]); err != nil {
		return err
	}

	if *showVersion {
		fmt.Println("lumen " + version)
		return nil
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}

	logger, logs, cleanup, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	slog.SetDefault(logger)

	for _, w := range cfg.Warnings {
		logger.Warn("config warning", "warning", w)
	}

	args := fs.Args()
	if len(args) > 0 && args[0] == "run" {
		if len(args) < 2 {
			return fmt.Errorf("usage: lumen run <script.js>")
		}
		return script.Run(args[1], cfg.ToastDuration, logger)
	}
	if len(args) > 0 {
		return fmt.Errorf("unknown command: %s", args[0])
	}

	return storefront.Run(cfg, logger, logs, nil)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	cfg, err := config.Load()
	if err != nil {
		// A broken default config should not block the page; fall back
		// to defaults and surface the problem as a warning.
		cfg = config.New()
		cfg.Warnings = append(cfg.Warnings, err.Error())
	}
	return cfg, nil
}

// setupLogging builds the in-memory handler for the debug overlay, teeing
// to a JSON log file when one is configured.
func setupLogging(cfg *config.Config) (*slog.Logger, *applog.Handler, func(), error) {
	opts := []applog.Option{applog.WithLevel(cfg.Level())}
	cleanup := func() {}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		opts = append(opts, applog.WithNext(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: cfg.Level()})))
		cleanup = func() { _ = f.Close() }
	}

	logger, handler := applog.New(500, opts...)
	return logger, handler, cleanup, nil
}
