package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sandeepkv93/tally/internal/model"
)

const stateFileName = StateKey + ".json"

// FileStore keeps the snapshot as a JSON document. Writes go through a
// temporary file and a rename so readers never see a partial snapshot.
type FileStore struct {
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage: empty state path")
	}
	return &FileStore{path: path}, nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error { return nil }

// UpdatedAt is the modification time of the snapshot file.
func (f *FileStore) UpdatedAt(_ context.Context) (time.Time, error) {
	info, err := os.Stat(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, fmt.Errorf("stat %s: %w", f.path, err)
	}
	return info.ModTime(), nil
}

func (f *FileStore) Load(_ context.Context) (model.AppState, error) {
	raw, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.AppState{}, ErrNotFound
		}
		return model.AppState{}, fmt.Errorf("read %s: %w", f.path, err)
	}
	return DecodeState(raw)
}

func (f *FileStore) Save(ctx context.Context, state model.AppState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(f.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	payload, err := EncodeState(state)
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}
	return nil
}
