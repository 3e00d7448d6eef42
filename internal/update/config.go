package update

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/tally/internal/model"
	"github.com/sandeepkv93/tally/internal/storage"
)

const ConfigFileName = "config.yaml"

type RuntimeConfig struct {
	DataDir string `yaml:"data_dir"`
	Storage string `yaml:"storage"`
	// Language and Theme override the persisted settings at startup when set.
	Language        string `yaml:"language"`
	Theme           string `yaml:"theme"`
	DismissSeconds  int    `yaml:"dismiss_seconds"`
	HighlightMS     int    `yaml:"highlight_ms"`
	SchedulerBuffer int    `yaml:"scheduler_buffer"`
	Watch           bool   `yaml:"watch"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DataDir:         storage.DefaultDataDir(),
		Storage:         string(storage.BackendFile),
		DismissSeconds:  5,
		HighlightMS:     1000,
		SchedulerBuffer: 64,
		Watch:           true,
	}
}

// LoadRuntimeConfig layers defaults, the YAML file in the data dir and
// TALLY_* environment variables. A data dir chosen by flag or
// TALLY_DATA_DIR wins over the file's data_dir.
func LoadRuntimeConfig(dataDir string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()
	cfg.DataDir = storage.ResolveDataDir(dataDir)
	cfg, err := RuntimeConfigFromFile(cfg, filepath.Join(cfg.DataDir, ConfigFileName))
	if err != nil {
		return cfg, err
	}
	cfg = RuntimeConfigFromEnv(cfg)
	if dir, ok := storage.DataDirOverride(dataDir); ok {
		cfg.DataDir = dir
	}
	return cfg, cfg.Validate()
}

// RuntimeConfigFromFile overlays the fields present in a YAML file. A
// missing file leaves base unchanged.
func RuntimeConfigFromFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return base, nil
	}
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("TALLY_STORAGE")); v != "" {
		cfg.Storage = v
	}
	if v := strings.TrimSpace(os.Getenv("TALLY_LANGUAGE")); v != "" {
		cfg.Language = v
	}
	if v := strings.TrimSpace(os.Getenv("TALLY_THEME")); v != "" {
		cfg.Theme = v
	}
	if v, ok := getEnvInt("TALLY_DISMISS_SECONDS"); ok && v > 0 {
		cfg.DismissSeconds = v
	}
	if v, ok := getEnvInt("TALLY_HIGHLIGHT_MS"); ok && v >= 0 {
		cfg.HighlightMS = v
	}
	if v, ok := getEnvInt("TALLY_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	if v, ok := getEnvBool("TALLY_WATCH"); ok {
		cfg.Watch = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	if _, err := storage.ParseBackend(c.Storage); err != nil {
		return err
	}
	if c.Theme != "" && !model.Theme(c.Theme).IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidTheme, c.Theme)
	}
	return nil
}

func (c RuntimeConfig) Backend() storage.Backend {
	b, err := storage.ParseBackend(c.Storage)
	if err != nil {
		return storage.BackendFile
	}
	return b
}

func (c RuntimeConfig) DismissAfter() time.Duration {
	if c.DismissSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.DismissSeconds) * time.Second
}

func (c RuntimeConfig) HighlightAfter() time.Duration {
	return time.Duration(c.HighlightMS) * time.Millisecond
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
