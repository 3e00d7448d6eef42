package storage

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const (
	appDirName = "tally"
	// DataDirEnv names the variable that relocates the data directory.
	DataDirEnv = "TALLY_DATA_DIR"
)

// DefaultDataDir is ResolveDataDir without an explicit directory.
func DefaultDataDir() string {
	return ResolveDataDir("")
}

// ResolveDataDir picks the data directory: explicit, then TALLY_DATA_DIR,
// then the per-user platform directory.
func ResolveDataDir(explicit string) string {
	if dir, ok := DataDirOverride(explicit); ok {
		return dir
	}
	return platformDataDir(runtime.GOOS)
}

// DataDirOverride reports the directory chosen by the user, if any. A
// leading "~" is expanded to the home directory.
func DataDirOverride(explicit string) (string, bool) {
	for _, candidate := range []string{explicit, os.Getenv(DataDirEnv)} {
		if dir := strings.TrimSpace(candidate); dir != "" {
			return expandHome(dir), true
		}
	}
	return "", false
}

func expandHome(dir string) string {
	if dir != "~" && !strings.HasPrefix(dir, "~/") {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dir
	}
	return filepath.Join(home, strings.TrimPrefix(dir, "~"))
}

func platformDataDir(goos string) string {
	home, _ := os.UserHomeDir()
	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appDirName)
	case "windows":
		for _, env := range []string{"LOCALAPPDATA", "APPDATA"} {
			if dir := os.Getenv(env); dir != "" {
				return filepath.Join(dir, appDirName)
			}
		}
		return filepath.Join(home, appDirName)
	default:
		if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
			return filepath.Join(dir, appDirName)
		}
		return filepath.Join(home, ".local", "share", appDirName)
	}
}
