package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"fieldops/internal/console/cli"
	"fieldops/internal/console/config"
	"fieldops/internal/infrastructure/localstore"
	"fieldops/internal/infrastructure/logging"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	cfgPath := os.Getenv("FIELDOPS_CONFIG")
	if cfgPath == "" {
		cfgPath = config.DefaultPath(home)
	}
	cfg, err := config.Load(cfgPath, home)
	if err != nil {
		return err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	stderrLevel := slog.LevelError
	if cfg.LogFile == "" {
		stderrLevel = level
	}
	logger, cleanup := logging.SetupSplit(os.Stderr, stderrLevel, cfg.LogFile, level)
	defer cleanup()
	logging.Install(logger)

	database, err := localstore.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	app, err := cli.NewApp(cfg, database, logger, os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	defer app.Shutdown()
	app.ConfigPath = cfgPath

	// Detect interactive terminal for forms and the skip prompt.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
