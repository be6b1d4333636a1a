package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/inv-cli/internal/adapters/storage"
	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports/mocks"
)

func sampleAsset(id, name string) domain.Asset {
	return domain.Asset{
		ID:        id,
		Name:      name,
		Brand:     "Dell",
		Status:    domain.StatusActive,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestInventoryRepository_EmptyStore(t *testing.T) {
	repo := NewInventoryRepository(mocks.NewMockStore(), nil)

	snap := repo.Snapshot(context.Background())

	assert.Empty(t, snap.Assets)
	assert.Empty(t, snap.Changes)
}

func TestInventoryRepository_PersistsEachCollection(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	repo := NewInventoryRepository(store, nil)

	require.NoError(t, repo.AddAsset(ctx, sampleAsset("a1", "PC-1")))
	_, hasChanges := store.Raw(domain.ChangesKey)
	assert.False(t, hasChanges, "adding an asset must not write the change collection")

	require.NoError(t, repo.AddChange(ctx, domain.ChangeRecord{ID: "c1", AssetID: "a1", Type: domain.ChangeHardware, Date: "2024-01-01"}))

	// a fresh repository over the same store sees both writes
	reopened := NewInventoryRepository(store, nil).Snapshot(ctx)
	if diff := cmp.Diff(repo.Snapshot(ctx), reopened); diff != "" {
		t.Errorf("reloaded snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestInventoryRepository_SnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewInventoryRepository(mocks.NewMockStore(), nil)
	require.NoError(t, repo.AddAsset(ctx, sampleAsset("a1", "PC-1")))

	snap := repo.Snapshot(ctx)
	snap.Assets[0].Name = "mutated"

	assert.Equal(t, "PC-1", repo.Snapshot(ctx).Assets[0].Name)
}

func TestInventoryRepository_UpdateAsset(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	repo := NewInventoryRepository(store, nil)
	require.NoError(t, repo.Append(ctx, []domain.Asset{sampleAsset("a1", "PC-1"), sampleAsset("a2", "PC-2")}, nil))

	updated := sampleAsset("a2", "PC-2b")
	require.NoError(t, repo.UpdateAsset(ctx, updated))

	stored := storage.Load(ctx, store, domain.AssetsKey, []domain.Asset(nil), nil)
	require.Len(t, stored, 2)
	assert.Equal(t, "PC-1", stored[0].Name)
	assert.Equal(t, "PC-2b", stored[1].Name)

	err := repo.UpdateAsset(ctx, sampleAsset("zz", "ghost"))
	assert.True(t, errors.Is(err, domain.ErrAssetNotFound))
}

func TestInventoryRepository_FailedWriteLeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	repo := NewInventoryRepository(store, nil)
	require.NoError(t, repo.AddAsset(ctx, sampleAsset("a1", "PC-1")))

	store.SetErrors(nil, errors.New("read-only filesystem"))
	err := repo.AddAsset(ctx, sampleAsset("a2", "PC-2"))

	require.Error(t, err)
	assert.Len(t, repo.Snapshot(ctx).Assets, 1)
}

func TestInventoryRepository_CorruptPayloadRecoversToEmpty(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	store.Put(domain.AssetsKey, []byte("{not json"))
	store.Put(domain.ChangesKey, []byte(`[{"id":"c1","computerId":"a1","type":"Software","date":"2024-01-01"}]`))

	log, hook := test.NewNullLogger()
	snap := NewInventoryRepository(store, log).Snapshot(ctx)

	assert.Empty(t, snap.Assets)
	assert.Len(t, snap.Changes, 1)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestInventoryRepository_LoadsOnce(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	repo := NewInventoryRepository(store, nil)

	repo.Snapshot(ctx)
	repo.Snapshot(ctx)
	require.NoError(t, repo.AddAsset(ctx, sampleAsset("a1", "PC-1")))

	assert.Equal(t, []string{domain.AssetsKey, domain.ChangesKey}, store.ReadCalls())
}

func TestInventoryRepository_Reload(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	repo := NewInventoryRepository(store, nil)
	assert.Empty(t, repo.Snapshot(ctx).Assets)

	// another process writes
	other := NewInventoryRepository(store, nil)
	require.NoError(t, other.AddAsset(ctx, sampleAsset("a1", "PC-1")))

	assert.Empty(t, repo.Snapshot(ctx).Assets)
	repo.Reload(ctx)
	assert.Len(t, repo.Snapshot(ctx).Assets, 1)
}

func TestInventoryRepository_BlankCreatedAtSurvivesRewrite(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	store.Put(domain.AssetsKey, []byte(`[
		{"id":"a1","name":"PC-1","status":"Active","createdAt":"2024-01-02T03:04:05.000Z"},
		{"id":"a2","name":"PC-2","status":"Active","createdAt":""}
	]`))
	store.Put(domain.ChangesKey, []byte(`[{"id":"c1","computerId":"a2","type":"Software","date":"2024-01-01","createdAt":"yesterday"}]`))

	log, hook := test.NewNullLogger()
	repo := NewInventoryRepository(store, log)

	snap := repo.Snapshot(ctx)
	require.Len(t, snap.Assets, 2)
	require.Len(t, snap.Changes, 1)
	assert.True(t, snap.Assets[1].CreatedAt.IsZero())
	assert.True(t, snap.Changes[0].CreatedAt.IsZero())
	assert.Empty(t, hook.AllEntries(), "tolerated timestamps are not load failures")

	require.NoError(t, repo.AddAsset(ctx, sampleAsset("a3", "PC-3")))
	require.NoError(t, repo.AddChange(ctx, domain.ChangeRecord{ID: "c2", AssetID: "a3", Type: domain.ChangeHardware, Date: "2024-02-01"}))

	reopened := NewInventoryRepository(store, log).Snapshot(ctx)
	assert.Len(t, reopened.Assets, 3)
	assert.Len(t, reopened.Changes, 2)
	assert.Equal(t, "PC-2", reopened.Assets[1].Name)
}

func TestInventoryRepository_AppendReportsPartialWrite(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockStore()
	store.FailWrites(domain.ChangesKey, errors.New("disk full"))
	repo := NewInventoryRepository(store, nil)

	err := repo.Append(ctx,
		[]domain.Asset{sampleAsset("a1", "PC-1")},
		[]domain.ChangeRecord{{ID: "c1", AssetID: "a1", Type: domain.ChangeHardware, Date: "2024-01-01"}},
	)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPartialWrite))
	snap := repo.Snapshot(ctx)
	assert.Len(t, snap.Assets, 1)
	assert.Empty(t, snap.Changes)

	// a change-only append that fails is a plain error
	err = repo.Append(ctx, nil, []domain.ChangeRecord{{ID: "c2", AssetID: "a1", Type: domain.ChangeHardware, Date: "2024-01-02"}})
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrPartialWrite))
}
