package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/tally/internal/scheduler"
	"github.com/sandeepkv93/tally/internal/storage"
	"github.com/sandeepkv93/tally/internal/update"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	logFile, err := tea.LogToFile(filepath.Join(cfg.DataDir, "tally.log"), "tally")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := log.Default()

	a, err := openApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	engine := scheduler.NewEngine(cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(update.Deps{
		Store:     a.store,
		Catalog:   a.catalog,
		Scheduler: engine,
		Config:    cfg,
		Logger:    logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())

	if cfg.Watch {
		if w, ok := a.persister.(storage.Watchable); ok {
			stop, err := update.StartWatcher(w.Path(), program, logger)
			if err != nil {
				logger.Printf("watcher disabled: %v", err)
			} else {
				defer stop()
			}
		}
	}

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
