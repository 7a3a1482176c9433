package main

import (
	"fmt"
	"os"

	"taskcal/internal/config"
	"taskcal/internal/store"
	"taskcal/internal/ui"
)

var runUI = ui.Run

func main() {
	if err := run(config.ResolveConfigPath()); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// run owns the log file so it is closed before main exits.
func run(configPath string) error {
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, closer, err := config.NewLogger(cfg)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer closer.Close()

	s := store.New(
		store.WithLogger(logger),
		store.WithViewMode(cfg.DefaultView),
		store.WithPanelWidth(cfg.PanelWidth),
	)
	logger.Info("starting", "config", configPath, "view", cfg.DefaultView)

	if err := runUI(s, cfg, logger); err != nil {
		logger.Error("program exited", "err", err)
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
