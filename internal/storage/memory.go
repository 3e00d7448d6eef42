package storage

import (
	"context"
	"sync"

	"github.com/sandeepkv93/tally/internal/model"
)

// MemoryStore holds the encoded snapshot in memory. It goes through the
// same codec as the durable backends.
type MemoryStore struct {
	mu      sync.Mutex
	payload []byte
	saves   int
	failErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (model.AppState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.payload == nil {
		return model.AppState{}, ErrNotFound
	}
	return DecodeState(m.payload)
}

func (m *MemoryStore) Save(_ context.Context, state model.AppState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failErr != nil {
		return m.failErr
	}
	payload, err := EncodeState(state)
	if err != nil {
		return err
	}
	m.payload = payload
	m.saves++
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Saves counts successful writes.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// SetRaw replaces the stored payload, bypassing the encoder.
func (m *MemoryStore) SetRaw(raw []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payload = append([]byte(nil), raw...)
}

// FailWith makes subsequent saves return err; nil restores normal saves.
func (m *MemoryStore) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}
