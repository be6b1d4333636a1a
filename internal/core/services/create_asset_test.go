package services

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports/mocks"
)

func TestCreateAssetService_Execute(t *testing.T) {
	tests := []struct {
		name        string
		draft       func() domain.AssetDraft
		failWrites  bool
		expectError bool
		badFields   []string
	}{
		{
			name:  "successful asset creation",
			draft: validAssetDraft,
		},
		{
			name: "optional fields may be empty",
			draft: func() domain.AssetDraft {
				d := validAssetDraft()
				d.SerialNumber = ""
				d.Graphics = ""
				d.PurchaseDate = ""
				return d
			},
		},
		{
			name: "missing required fields",
			draft: func() domain.AssetDraft {
				d := validAssetDraft()
				d.Name = "   "
				d.RAM = ""
				return d
			},
			expectError: true,
			badFields:   []string{"name", "ram"},
		},
		{
			name: "unknown status",
			draft: func() domain.AssetDraft {
				d := validAssetDraft()
				d.Status = "Lost"
				return d
			},
			expectError: true,
			badFields:   []string{"status"},
		},
		{
			name:        "repository failure",
			draft:       validAssetDraft,
			failWrites:  true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			repo := mocks.NewMockInventoryRepository()
			repo.SetShouldFail(tt.failWrites, nil)
			log, _ := nullLogger()

			svc := NewCreateAssetService(repo, sequentialFactory(), log)
			resp, err := svc.Execute(ctx, tt.draft())

			if tt.expectError {
				require.Error(t, err)
				assert.Nil(t, resp)
				assert.Empty(t, repo.Snapshot(ctx).Assets)

				if len(tt.badFields) > 0 {
					var verr *domain.ValidationError
					require.True(t, errors.As(err, &verr))
					for _, f := range tt.badFields {
						assert.True(t, verr.Has(f), "expected %s to be reported", f)
					}
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "id-1", resp.Asset.ID)
			assert.Equal(t, fixedNow, resp.Asset.CreatedAt)

			stored := repo.Snapshot(ctx).Assets
			require.Len(t, stored, 1)
			assert.Equal(t, resp.Asset, stored[0])
		})
	}
}

func TestCreateAssetService_TrimsInput(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockInventoryRepository()
	log, _ := nullLogger()

	draft := validAssetDraft()
	draft.Name = "  PC-9  "

	resp, err := NewCreateAssetService(repo, sequentialFactory(), log).Execute(ctx, draft)

	require.NoError(t, err)
	assert.Equal(t, "PC-9", resp.Asset.Name)
}

func TestCreateAssetService_AppendsInOrder(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockInventoryRepository()
	log, hook := nullLogger()
	svc := NewCreateAssetService(repo, sequentialFactory(), log)

	for _, name := range []string{"first", "second", "third"} {
		d := validAssetDraft()
		d.Name = name
		_, err := svc.Execute(ctx, d)
		require.NoError(t, err)
	}

	stored := repo.Snapshot(ctx).Assets
	assert.Equal(t, []string{"first", "second", "third"}, []string{stored[0].Name, stored[1].Name, stored[2].Name})
	assert.Equal(t, 3, repo.Writes())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.InfoLevel, hook.LastEntry().Level)
	assert.Equal(t, "asset created", hook.LastEntry().Message)
}
