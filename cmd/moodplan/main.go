package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rvalencia/moodplan/internal/config"
	"github.com/rvalencia/moodplan/internal/db"
	"github.com/rvalencia/moodplan/internal/llm"
	"github.com/rvalencia/moodplan/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	store, err := db.New(cfg.Storage.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	coach, err := llm.NewClient(cfg.LLM.Provider, cfg.LLM.Model, cfg.LLM.BaseURL)
	if err != nil {
		return fmt.Errorf("configuring LLM provider: %w", err)
	}

	app := ui.NewApp(store, coach, cfg)
	defer func() { _ = app.Close() }()
	return app.Execute()
}
