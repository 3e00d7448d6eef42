package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"

	"github.com/sandeepkv93/tally/internal/model"
)

const sqliteTimeLayout = time.RFC3339Nano

// Driver names registered by the two sqlite packages.
const (
	DriverCGO    = "sqlite3"
	DriverPureGo = "sqlite"
)

type SQLiteStore struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

func NewSQLiteStore(db *sql.DB, path string) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if err := MigrateUp(db); err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db, path: path, now: time.Now}, nil
}

func OpenSQLite(driver, path string) (*SQLiteStore, error) {
	switch driver {
	case DriverCGO, DriverPureGo:
	default:
		return nil, fmt.Errorf("storage: unknown sqlite driver %q", driver)
	}
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer keeps snapshot writes in call order.
	db.SetMaxOpenConns(1)
	store, err := NewSQLiteStore(db, path)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Path() string {
	return s.path
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (model.AppState, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv_state WHERE key = ?`, StateKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.AppState{}, ErrNotFound
		}
		return model.AppState{}, fmt.Errorf("load %s: %w", StateKey, err)
	}
	return DecodeState([]byte(value))
}

func (s *SQLiteStore) Save(ctx context.Context, state model.AppState) error {
	payload, err := EncodeState(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO kv_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		StateKey, string(payload), s.now().UTC().Format(sqliteTimeLayout),
	)
	if err != nil {
		return fmt.Errorf("save %s: %w", StateKey, err)
	}
	return nil
}

// UpdatedAt reports when the snapshot was last written.
func (s *SQLiteStore) UpdatedAt(ctx context.Context) (time.Time, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT updated_at FROM kv_state WHERE key = ?`, StateKey).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, ErrNotFound
		}
		return time.Time{}, err
	}
	return time.Parse(sqliteTimeLayout, raw)
}
