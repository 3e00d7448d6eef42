package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Backend string

const (
	BackendFile    Backend = "file"
	BackendSQLite3 Backend = "sqlite3"
	BackendSQLite  Backend = "sqlite"
	BackendMemory  Backend = "memory"
)

func (b Backend) IsValid() bool {
	switch b {
	case BackendFile, BackendSQLite3, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

func ParseBackend(raw string) (Backend, error) {
	b := Backend(strings.ToLower(strings.TrimSpace(raw)))
	if b == "" {
		return BackendFile, nil
	}
	if !b.IsValid() {
		return "", fmt.Errorf("storage: unknown backend %q", raw)
	}
	return b, nil
}

// Open builds the persister for backend rooted at dataDir.
func Open(backend Backend, dataDir string) (Persister, error) {
	if backend != BackendMemory {
		if strings.TrimSpace(dataDir) == "" {
			return nil, fmt.Errorf("storage: data dir is required for %s backend", backend)
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	switch backend {
	case BackendFile:
		return NewFileStore(filepath.Join(dataDir, stateFileName))
	case BackendSQLite3:
		return OpenSQLite(DriverCGO, filepath.Join(dataDir, "tally.db"))
	case BackendSQLite:
		return OpenSQLite(DriverPureGo, filepath.Join(dataDir, "tally.db"))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
