package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamal-hamza/inv-cli/internal/core/domain"
	"github.com/kamal-hamza/inv-cli/internal/core/ports/mocks"
)

const browserBundle = `{
  "computers": [
    {"id": "1700000000000", "name": "PC-1", "brand": "Dell", "model": "OptiPlex", "serialNumber": "",
     "operatingSystem": "Windows 11", "processor": "i5", "ram": "16GB", "storage": "512GB", "graphics": "",
     "purchaseDate": "2023-06-01", "location": "HQ", "status": "Active", "createdAt": "2023-06-02T10:00:00.000Z"},
    {"id": "1700000000001", "name": "PC-2", "brand": "HP", "model": "EliteDesk", "operatingSystem": "Ubuntu",
     "processor": "Ryzen 5", "ram": "8GB", "storage": "256GB", "location": "HQ", "status": "Stolen",
     "createdAt": "2023-06-02T10:00:00.000Z"}
  ],
  "changes": [
    {"id": "1700000000100", "computerId": "1700000000000", "type": "Operating System", "description": "Upgrade",
     "component": "OS", "previousValue": "Windows 10", "newValue": "Windows 11", "date": "2024-01-15",
     "notes": "", "createdAt": "2024-01-15T09:00:00.000Z"},
    {"id": "1700000000101", "computerId": "1699999999999", "type": "Hardware", "description": "Orphan",
     "component": "Disk", "newValue": "2TB", "date": "2024-01-16", "createdAt": "2024-01-16T09:00:00.000Z"}
  ]
}`

func TestImportService_Execute(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockInventoryRepository()
	log, _ := nullLogger()

	resp, err := NewImportService(repo, log).Execute(ctx, strings.NewReader(browserBundle), ImportRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AssetsAdded)
	assert.Equal(t, 2, resp.ChangesAdded)
	assert.Equal(t, 1, resp.Invalid)
	assert.Equal(t, 1, resp.DanglingChange)

	snap := repo.Snapshot(ctx)
	require.Len(t, snap.Assets, 1)
	assert.Equal(t, "PC-1", snap.Assets[0].Name)
	assert.Equal(t, domain.ChangeOperatingSystem, snap.Changes[0].Type)

	// a second import of the same bundle adds nothing
	resp, err = NewImportService(repo, log).Execute(ctx, strings.NewReader(browserBundle), ImportRequest{})
	require.NoError(t, err)
	assert.Zero(t, resp.AssetsAdded)
	assert.Zero(t, resp.ChangesAdded)
	assert.Equal(t, 3, resp.Duplicates)
	assert.Equal(t, 1, repo.Writes())
}

func TestImportService_DryRun(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockInventoryRepository()
	log, _ := nullLogger()

	resp, err := NewImportService(repo, log).Execute(ctx, strings.NewReader(browserBundle), ImportRequest{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.AssetsAdded)
	assert.Empty(t, repo.Snapshot(ctx).Assets)
	assert.Zero(t, repo.Writes())
}

func TestImportService_RoundTripsExport(t *testing.T) {
	ctx := context.Background()
	source, snap := exportFixture()
	log, _ := nullLogger()

	var buf bytes.Buffer
	_, err := NewExportService(source).Execute(ctx, FormatJSON, &buf)
	require.NoError(t, err)

	target := mocks.NewMockInventoryRepository()
	_, err = NewImportService(target, log).Execute(ctx, &buf, ImportRequest{})
	require.NoError(t, err)

	assert.Equal(t, snap, target.Snapshot(ctx))
}

func TestImportService_RejectsMalformedInput(t *testing.T) {
	log, _ := nullLogger()

	_, err := NewImportService(mocks.NewMockInventoryRepository(), log).
		Execute(context.Background(), strings.NewReader("not json"), ImportRequest{})

	assert.Error(t, err)
}

func TestImportService_PartialSaveReportsSavedComputers(t *testing.T) {
	ctx := context.Background()
	repo := mocks.NewMockInventoryRepository()
	repo.SetShouldFail(true, fmt.Errorf("%w: disk full", domain.ErrPartialWrite))
	log, hook := nullLogger()

	resp, err := NewImportService(repo, log).Execute(ctx, strings.NewReader(browserBundle), ImportRequest{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrPartialWrite))
	assert.Contains(t, err.Error(), "saved 1 computers")

	require.NotNil(t, resp)
	assert.Equal(t, 1, resp.AssetsAdded)
	assert.Zero(t, resp.ChangesAdded)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestImportService_FailedSaveReturnsNoResponse(t *testing.T) {
	repo := mocks.NewMockInventoryRepository()
	repo.SetShouldFail(true, errors.New("disk full"))
	log, _ := nullLogger()

	resp, err := NewImportService(repo, log).Execute(context.Background(), strings.NewReader(browserBundle), ImportRequest{})
	assert.Error(t, err)
	assert.Nil(t, resp)
}
