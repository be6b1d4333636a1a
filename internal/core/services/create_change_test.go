package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports/mocks"
)

func TestCreateChangeService_Execute(t *testing.T) {
	tests := []struct {
		name        string
		ownerID     string
		draft       func() domain.ChangeDraft
		expectError error
		badFields   []string
	}{
		{
			name:    "successful change",
			ownerID: "id-1",
			draft:   validChangeDraft,
		},
		{
			name:    "operating system change",
			ownerID: "id-1",
			draft: func() domain.ChangeDraft {
				d := validChangeDraft()
				d.Type = domain.ChangeOperatingSystem
				d.Component = "OS"
				d.PreviousValue = "Windows 10"
				d.NewValue = "Windows 11"
				return d
			},
		},
		{
			name:        "unknown owner",
			ownerID:     "ghost",
			draft:       validChangeDraft,
			expectError: domain.ErrAssetNotFound,
		},
		{
			name:    "missing required fields",
			ownerID: "id-1",
			draft: func() domain.ChangeDraft {
				return domain.ChangeDraft{Type: domain.ChangeSoftware}
			},
			badFields: []string{"description", "component", "newValue", "date"},
		},
		{
			name:    "unknown type",
			ownerID: "id-1",
			draft: func() domain.ChangeDraft {
				d := validChangeDraft()
				d.Type = "Paint"
				return d
			},
			badFields: []string{"type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo, _ := seededRepo()
			log, _ := nullLogger()

			factory := sequentialFactory().WithIDSource(func() string { return "chg-1" })
			svc := NewCreateChangeService(repo, factory, log)

			resp, err := svc.Execute(ctx, tt.ownerID, tt.draft())

			switch {
			case tt.expectError != nil:
				assert.True(t, errors.Is(err, tt.expectError))
				assert.Empty(t, repo.Snapshot(ctx).Changes)
			case len(tt.badFields) > 0:
				var verr *domain.ValidationError
				require.True(t, errors.As(err, &verr))
				for _, f := range tt.badFields {
					assert.True(t, verr.Has(f), "expected %s to be reported", f)
				}
				assert.Empty(t, repo.Snapshot(ctx).Changes)
			default:
				require.NoError(t, err)
				assert.Equal(t, "chg-1", resp.Change.ID)
				assert.Equal(t, tt.ownerID, resp.Change.AssetID)
				assert.Len(t, repo.Snapshot(ctx).Changes, 1)
			}
		})
	}
}

func TestCreateChangeService_CarriesOwnerAndFollowsAsset(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockInventoryRepository()
	log, _ := nullLogger()
	factory := NewEntityFactory()

	created, err := NewCreateAssetService(repo, factory, log).Execute(ctx, validAssetDraft())
	require.NoError(t, err)

	svc := NewCreateChangeService(repo, factory, log)
	for i := 0; i < 5; i++ {
		resp, err := svc.Execute(ctx, created.Asset.ID, validChangeDraft())
		require.NoError(t, err)
		assert.Equal(t, created.Asset.ID, resp.Change.AssetID)
		assert.False(t, resp.Change.CreatedAt.Before(created.Asset.CreatedAt))
	}
}

func TestCreateChangeService_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	repo, existing := seededRepo()
	repo.SetShouldFail(true, errors.New("disk full"))
	log, _ := nullLogger()

	_, err := NewCreateChangeService(repo, sequentialFactory(), log).Execute(ctx, existing.ID, validChangeDraft())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
