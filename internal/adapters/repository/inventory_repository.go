package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kamal-hamza/inv-cli/internal/adapters/storage"
	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports"
)

// InventoryRepository owns the asset and change collections for one session.
// Collections are loaded from the store on first use and written back whole
// after every mutation.
type InventoryRepository struct {
	store  ports.Store
	log    logrus.FieldLogger
	mu     sync.RWMutex
	loaded bool

	assets  []domain.Asset
	changes []domain.ChangeRecord
}

// NewInventoryRepository creates a repository over store
func NewInventoryRepository(store ports.Store, log logrus.FieldLogger) *InventoryRepository {
	return &InventoryRepository{
		store: store,
		log:   log,
	}
}

// Ensure it implements the interface
var _ ports.InventoryRepository = (*InventoryRepository)(nil)

// Snapshot returns copies of both collections
func (r *InventoryRepository) Snapshot(ctx context.Context) domain.Snapshot {
	r.ensureLoaded(ctx)

	r.mu.RLock()
	defer r.mu.RUnlock()

	return domain.Snapshot{
		Assets:  append([]domain.Asset(nil), r.assets...),
		Changes: append([]domain.ChangeRecord(nil), r.changes...),
	}
}

// Reload discards the in-memory collections and reads them from the store again
func (r *InventoryRepository) Reload(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loadLocked(ctx)
}

// AddAsset appends asset and persists the asset collection
func (r *InventoryRepository) AddAsset(ctx context.Context, asset domain.Asset) error {
	return r.Append(ctx, []domain.Asset{asset}, nil)
}

// UpdateAsset replaces the asset with the same ID and persists the asset collection
func (r *InventoryRepository) UpdateAsset(ctx context.Context, asset domain.Asset) error {
	r.ensureLoaded(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.assets {
		if r.assets[i].ID == asset.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", domain.ErrAssetNotFound, asset.ID)
	}

	next := append([]domain.Asset(nil), r.assets...)
	next[idx] = asset

	if err := storage.Save(ctx, r.store, domain.AssetsKey, next); err != nil {
		return err
	}
	r.assets = next
	return nil
}

// AddChange appends change and persists the change collection
func (r *InventoryRepository) AddChange(ctx context.Context, change domain.ChangeRecord) error {
	return r.Append(ctx, nil, []domain.ChangeRecord{change})
}

// Append adds assets and changes, persisting only the collections that grew.
// In-memory state changes only after the corresponding write succeeds. Assets
// are written first; if the change write then fails the error wraps ErrPartialWrite.
func (r *InventoryRepository) Append(ctx context.Context, assets []domain.Asset, changes []domain.ChangeRecord) error {
	r.ensureLoaded(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()

	if len(assets) > 0 {
		next := make([]domain.Asset, 0, len(r.assets)+len(assets))
		next = append(append(next, r.assets...), assets...)
		if err := storage.Save(ctx, r.store, domain.AssetsKey, next); err != nil {
			return err
		}
		r.assets = next
	}

	if len(changes) > 0 {
		next := make([]domain.ChangeRecord, 0, len(r.changes)+len(changes))
		next = append(append(next, r.changes...), changes...)
		if err := storage.Save(ctx, r.store, domain.ChangesKey, next); err != nil {
			if len(assets) > 0 {
				return fmt.Errorf("%w: %w", domain.ErrPartialWrite, err)
			}
			return err
		}
		r.changes = next
	}

	return nil
}

func (r *InventoryRepository) ensureLoaded(ctx context.Context) {
	r.mu.RLock()
	loaded := r.loaded
	r.mu.RUnlock()
	if loaded {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.loaded {
		r.loadLocked(ctx)
	}
}

func (r *InventoryRepository) loadLocked(ctx context.Context) {
	r.assets = storage.Load(ctx, r.store, domain.AssetsKey, []domain.Asset{}, r.log)
	r.changes = storage.Load(ctx, r.store, domain.ChangesKey, []domain.ChangeRecord{}, r.log)
	r.loaded = true
}
