package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/tally/internal/model"
)

// StateKey names the single record holding the whole application state.
const StateKey = "app_state"

var (
	ErrNotFound = errors.New("storage: not found")
	ErrCorrupt  = errors.New("storage: corrupt snapshot")
)

// Persister saves and restores full application snapshots. Load returns
// ErrNotFound when nothing has been saved yet.
type Persister interface {
	Load(ctx context.Context) (model.AppState, error)
	Save(ctx context.Context, state model.AppState) error
	Close() error
}

// Watchable is implemented by backends that live in a file on disk.
type Watchable interface {
	Path() string
}

// Stamped is implemented by backends that know when the snapshot was
// last written. It returns ErrNotFound before the first save.
type Stamped interface {
	UpdatedAt(ctx context.Context) (time.Time, error)
}

func EncodeState(state model.AppState) ([]byte, error) {
	payload, err := json.MarshalIndent(state.Normalize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode state: %w", err)
	}
	return payload, nil
}

func DecodeState(raw []byte) (model.AppState, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return model.AppState{}, ErrNotFound
	}
	var state model.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		return model.AppState{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return state.Normalize(), nil
}
