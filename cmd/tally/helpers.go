package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/sandeepkv93/tally/internal/i18n"
	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/storage"
	"github.com/sandeepkv93/tally/internal/store"
	"github.com/sandeepkv93/tally/internal/update"
)

type app struct {
	cfg       update.RuntimeConfig
	store     *store.Store
	catalog   *i18n.Catalog
	persister storage.Persister
}

func (a *app) Close() error {
	return a.persister.Close()
}

// loadConfig applies the persistent flags on top of the runtime config.
func loadConfig() (update.RuntimeConfig, error) {
	cfg, err := update.LoadRuntimeConfig(dataDir)
	if err != nil {
		return cfg, err
	}
	if backend != "" {
		cfg.Storage = backend
	}
	if ephemeral {
		cfg.Storage = string(storage.BackendMemory)
	}
	return cfg, cfg.Validate()
}

// openApp restores the store from the configured backend.
func openApp(cfg update.RuntimeConfig, logger *log.Logger) (*app, error) {
	p, err := storage.Open(cfg.Backend(), cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	catalog := i18n.NewCatalog(model.DefaultLanguage)
	st := store.New(store.Options{Persister: p, Language: catalog, Logger: logger})
	if cfg.Language != "" && i18n.Normalize(cfg.Language) != st.Language() {
		st.SetLanguage(cfg.Language)
	}
	if cfg.Theme != "" && model.Theme(cfg.Theme) != st.Theme() {
		st.SetTheme(model.Theme(cfg.Theme))
	}
	return &app{cfg: cfg, store: st, catalog: catalog, persister: p}, nil
}

// withApp opens the store for one subcommand and closes it afterwards.
func withApp(fn func(a *app) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cfg, log.New(os.Stderr, "tally: ", 0))
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// resolve looks a goal up by id or unique prefix.
func (a *app) resolve(prefix string) (model.Goal, bool, error) {
	g, completed, err := a.store.Resolve(prefix)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return model.Goal{}, false, fmt.Errorf("%s: %s", a.catalog.Translate("goalNotFound"), prefix)
	case err != nil:
		return model.Goal{}, false, err
	}
	return g, completed, nil
}

// resolveActive is resolve restricted to goals that are not completed.
func (a *app) resolveActive(prefix string) (model.Goal, error) {
	g, completed, err := a.resolve(prefix)
	if err != nil {
		return model.Goal{}, err
	}
	if completed {
		return model.Goal{}, fmt.Errorf("goal %s is already completed", shortID(g.ID))
	}
	return g, nil
}

// printSavedAt reports when the backend last wrote the snapshot.
func (a *app) printSavedAt(w io.Writer) {
	stamped, ok := a.persister.(storage.Stamped)
	if !ok {
		return
	}
	at, err := stamped.UpdatedAt(context.Background())
	if err != nil {
		return
	}
	fmt.Fprintf(w, "%s %s\n", a.catalog.Translate("saved"), humanize.Time(at))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
