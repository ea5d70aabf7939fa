// Package main is the entry point for the devproxy development server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vyrodovalexey/devproxy/internal/config"
	"github.com/vyrodovalexey/devproxy/internal/observability"
	"github.com/vyrodovalexey/devproxy/internal/router"
	"github.com/vyrodovalexey/devproxy/internal/server"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// cliFlags holds command line flags.
type cliFlags struct {
	configPath  string
	listen      string
	logLevel    string
	logFormat   string
	showVersion bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		printVersion()
		return
	}

	logger := initLogger(flags)
	defer func() { _ = logger.Sync() }()

	cfg := loadAndValidateConfig(flags, logger)
	srv := initServer(cfg, logger)

	runServer(srv, flags.configPath, logger)
}

// parseFlags parses command line flags.
func parseFlags() cliFlags {
	configPath := flag.String("config", getEnvOrDefault("DEVPROXY_CONFIG_PATH", "configs/devproxy.yaml"),
		"Path to configuration file")
	listen := flag.String("listen", getEnvOrDefault("DEVPROXY_LISTEN", ""),
		"Listen address (overrides configuration)")
	logLevel := flag.String("log-level", getEnvOrDefault("DEVPROXY_LOG_LEVEL", "info"),
		"Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", getEnvOrDefault("DEVPROXY_LOG_FORMAT", "console"),
		"Log format (json, console)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	return cliFlags{
		configPath:  *configPath,
		listen:      *listen,
		logLevel:    *logLevel,
		logFormat:   *logFormat,
		showVersion: *showVersion,
	}
}

// printVersion prints version information and exits.
func printVersion() {
	fmt.Printf("devproxy version %s\n", version)
	fmt.Printf("  Build time: %s\n", buildTime)
	fmt.Printf("  Git commit: %s\n", gitCommit)
}

// initLogger initializes the logger.
func initLogger(flags cliFlags) observability.Logger {
	logger, err := observability.NewLogger(observability.LogConfig{
		Level:  flags.logLevel,
		Format: flags.logFormat,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	return logger
}

// loadAndValidateConfig loads and validates the configuration.
func loadAndValidateConfig(flags cliFlags, logger observability.Logger) *config.Config {
	logger.Info("starting devproxy",
		observability.String("version", version),
		observability.String("config", flags.configPath),
	)

	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		logger.Fatal("failed to load configuration", observability.Error(err))
	}

	if flags.listen != "" {
		cfg.Server.Listen = flags.listen
	}

	if err := config.ValidateConfig(cfg); err != nil {
		logger.Fatal("invalid configuration", observability.Error(err))
	}

	logger.Info("configuration loaded",
		observability.String("listen", cfg.Server.Listen),
		observability.String("static", cfg.Server.Static),
		observability.Int("proxy_entries", len(cfg.Proxy)),
	)

	return cfg
}

// initServer assembles the proxy server from the configuration.
func initServer(cfg *config.Config, logger observability.Logger) *server.Server {
	entries := config.ValidEntries(cfg.Proxy, logger)
	rules := router.NewRuleSet(entries, logger)

	logger.Info("proxy rules compiled",
		observability.Int("configured", len(cfg.Proxy)),
		observability.Int("active", rules.Len()),
	)

	return server.New(cfg.Server, rules, server.WithLogger(logger))
}

// runServer runs the server and handles shutdown.
func runServer(srv *server.Server, configPath string, logger observability.Logger) {
	ctx := context.Background()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal("failed to start server", observability.Error(err))
	}

	watcher := startConfigWatcher(srv, configPath, logger)

	waitForShutdown(srv, watcher, logger)
}

// startConfigWatcher starts the configuration watcher so proxy rules
// follow edits to the config file without a restart.
func startConfigWatcher(
	srv *server.Server,
	configPath string,
	logger observability.Logger,
) *config.Watcher {
	watcher, err := config.NewWatcher(configPath, func(newCfg *config.Config) {
		entries := config.ValidEntries(newCfg.Proxy, logger)
		rules := router.NewRuleSet(entries, logger)
		srv.Rules().Swap(rules)
		logger.Info("proxy rules reloaded", observability.Int("active", rules.Len()))
	}, config.WithLogger(logger))

	if err != nil {
		logger.Warn("failed to create config watcher", observability.Error(err))
		return nil
	}

	if err := watcher.Start(context.Background()); err != nil {
		logger.Warn("failed to start config watcher", observability.Error(err))
	}

	return watcher
}

// waitForShutdown waits for a shutdown signal and drains the server.
func waitForShutdown(srv *server.Server, watcher *config.Watcher, logger observability.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("received shutdown signal", observability.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if watcher != nil {
		_ = watcher.Stop()
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to stop server gracefully", observability.Error(err))
	}

	logger.Info("devproxy stopped")
}

// getEnvOrDefault returns the environment variable value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
