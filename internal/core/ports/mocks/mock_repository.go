package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// MockInventoryRepository is an in-memory InventoryRepository for service tests
type MockInventoryRepository struct {
	mu         sync.RWMutex
	assets     []domain.Asset
	changes    []domain.ChangeRecord
	shouldFail bool
	failError  error
	writes     int
}

// NewMockInventoryRepository creates an empty mock repository
func NewMockInventoryRepository() *MockInventoryRepository {
	return &MockInventoryRepository{}
}

var _ ports.InventoryRepository = (*MockInventoryRepository)(nil)

// Snapshot returns copies of both collections
func (m *MockInventoryRepository) Snapshot(ctx context.Context) domain.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return domain.Snapshot{
		Assets:  append([]domain.Asset(nil), m.assets...),
		Changes: append([]domain.ChangeRecord(nil), m.changes...),
	}
}

// AddAsset appends an asset
func (m *MockInventoryRepository) AddAsset(ctx context.Context, asset domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(); err != nil {
		return err
	}
	m.assets = append(m.assets, asset)
	m.writes++
	return nil
}

// UpdateAsset replaces an asset by ID
func (m *MockInventoryRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(); err != nil {
		return err
	}
	for i := range m.assets {
		if m.assets[i].ID == asset.ID {
			m.assets[i] = asset
			m.writes++
			return nil
		}
	}
	return fmt.Errorf("%w: %s", domain.ErrAssetNotFound, asset.ID)
}

// AddChange appends a change record
func (m *MockInventoryRepository) AddChange(ctx context.Context, change domain.ChangeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(); err != nil {
		return err
	}
	m.changes = append(m.changes, change)
	m.writes++
	return nil
}

// Append adds several records at once
func (m *MockInventoryRepository) Append(ctx context.Context, assets []domain.Asset, changes []domain.ChangeRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.failure(); err != nil {
		return err
	}
	m.assets = append(m.assets, assets...)
	m.changes = append(m.changes, changes...)
	m.writes++
	return nil
}

// Seed inserts records directly, bypassing failure injection
func (m *MockInventoryRepository) Seed(assets []domain.Asset, changes []domain.ChangeRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets = append(m.assets, assets...)
	m.changes = append(m.changes, changes...)
}

// SetShouldFail makes every subsequent write return err (or a generic error)
func (m *MockInventoryRepository) SetShouldFail(fail bool, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shouldFail = fail
	m.failError = err
}

// Writes returns how many successful write calls were made
func (m *MockInventoryRepository) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.writes
}

func (m *MockInventoryRepository) failure() error {
	if !m.shouldFail {
		return nil
	}
	if m.failError != nil {
		return m.failError
	}
	return fmt.Errorf("mock write failure")
}

// --- MockStore ---

// MockStore is a Store that records calls and can inject read or write failures
type MockStore struct {
	mu        sync.Mutex
	data      map[string][]byte
	readErr   error
	writeErr  error
	keyErrs   map[string]error
	readCalls []string
}

// NewMockStore creates an empty mock store
func NewMockStore() *MockStore {
	return &MockStore{data: make(map[string][]byte)}
}

var _ ports.Store = (*MockStore)(nil)

func (m *MockStore) Read(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readCalls = append(m.readCalls, key)
	if m.readErr != nil {
		return nil, m.readErr
	}
	data, ok := m.data[key]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MockStore) Write(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.writeErr != nil {
		return m.writeErr
	}
	if err := m.keyErrs[key]; err != nil {
		return err
	}
	m.data[key] = append([]byte(nil), data...)
	return nil
}

func (m *MockStore) Close() error { return nil }

// Put stores raw bytes, e.g. to simulate a corrupt payload
func (m *MockStore) Put(key string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
}

// Raw returns the bytes stored under key
func (m *MockStore) Raw(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.data[key]
	return data, ok
}

// SetErrors injects read and write failures
func (m *MockStore) SetErrors(readErr, writeErr error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = readErr
	m.writeErr = writeErr
}

// FailWrites makes every write to key return err
func (m *MockStore) FailWrites(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keyErrs == nil {
		m.keyErrs = make(map[string]error)
	}
	m.keyErrs[key] = err
}

// ReadCalls returns the keys read so far
func (m *MockStore) ReadCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.readCalls...)
}
