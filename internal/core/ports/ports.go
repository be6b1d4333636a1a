package ports

import (
	"context"
	"errors"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
)

// ErrNotFound is returned by a Store when no value exists for a key
var ErrNotFound = errors.New("key not found")

// Store defines the port for durable key-value persistence.
// Each Write replaces the whole value stored under the key.
type Store interface {
	// Read returns the raw value for key, or ErrNotFound
	Read(ctx context.Context, key string) ([]byte, error)

	// Write commits data under key before returning
	Write(ctx context.Context, key string, data []byte) error

	// Close releases backend resources
	Close() error
}

// InventoryRepository defines the port for the asset and change collections
type InventoryRepository interface {
	// Snapshot returns an immutable copy of both collections
	Snapshot(ctx context.Context) domain.Snapshot

	// AddAsset appends a new asset and persists the collection
	AddAsset(ctx context.Context, asset domain.Asset) error

	// UpdateAsset replaces the asset with the same ID and persists the collection
	UpdateAsset(ctx context.Context, asset domain.Asset) error

	// AddChange appends a change record and persists the collection
	AddChange(ctx context.Context, change domain.ChangeRecord) error

	// Append adds several records at once (used by import)
	Append(ctx context.Context, assets []domain.Asset, changes []domain.ChangeRecord) error
}
